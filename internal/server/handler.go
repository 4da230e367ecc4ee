// internal/server/handler.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"review-analyzer/internal/analyzer"
	apperrors "review-analyzer/internal/common/errors"
	"review-analyzer/internal/models"
)

// Request bodies over this size are rejected before parsing.
const maxBodyBytes = 1 << 20

// analyzeRequestSchema type-checks the body. Field presence rules live in
// the orchestrator; the schema only rejects structurally wrong documents.
const analyzeRequestSchema = `{
	"type": "object",
	"properties": {
		"reviewText": {"type": "string"},
		"shopName": {"type": "string"}
	},
	"additionalProperties": true
}`

// AnalysisService is what the handler needs from the orchestrator.
type AnalysisService interface {
	AnalyzeReview(ctx context.Context, reviewText string) (*models.SingleReviewResult, error)
	AnalyzeShop(ctx context.Context, shopQuery string) (*models.AggregateResult, error)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	if result := s.validator.ValidateBytes(body); !result.Valid {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body", result.GetErrorMessages()[0])
		return
	}

	var req models.AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ctx := r.Context()

	// Flow selection sees sanitized values: a reviewText that is all
	// whitespace or BOM falls through to the shop flow.
	reviewText := analyzer.SanitizeReviewText(req.ReviewText)
	shopName := strings.TrimSpace(req.ShopName)

	if reviewText != "" {
		res, err := s.analysis.AnalyzeReview(ctx, reviewText)
		if err != nil {
			s.writeAnalysisError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, res)
		return
	}

	if shopName == "" {
		s.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Message: "Provide either reviewText or shopName",
		})
		return
	}

	res, err := s.analysis.AnalyzeShop(ctx, shopName)
	if err != nil {
		s.writeAnalysisError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeAnalysisError maps orchestrator errors to the two wire shapes:
// validation failures become a bare 400 message, everything else a 500 with
// the detail string.
func (s *Server) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) && stdErr.Code == apperrors.ErrCodeValidationFailed {
		s.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Message: stdErr.Message})
		return
	}

	if stdErr == nil {
		stdErr = apperrors.NewUnexpectedError(err)
	}
	s.logger.Error("analysis request failed", map[string]interface{}{
		"requestId": RequestIDFromContext(r.Context()),
		"code":      string(stdErr.Code),
		"category":  apperrors.GetErrorCategory(stdErr.Code),
		"error":     err.Error(),
	})
	s.writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Message: "Analysis failed",
		Error:   stdErr.Details,
	})
}

// writeError rejects a request before it reaches the orchestrator. Client
// errors carry a bare message on the wire; the detail goes to the log only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message, detail string) {
	s.logger.Warn("request rejected", map[string]interface{}{
		"requestId": RequestIDFromContext(r.Context()),
		"status":    status,
		"detail":    detail,
	})
	s.writeJSON(w, status, models.ErrorResponse{Message: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}
