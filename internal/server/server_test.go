// internal/server/server_test.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-analyzer/internal/common/config"
	apperrors "review-analyzer/internal/common/errors"
	"review-analyzer/internal/common/logger"
	"review-analyzer/internal/models"
)

type mockAnalysis struct {
	single    *models.SingleReviewResult
	aggregate *models.AggregateResult
	err       error

	gotReview string
	gotShop   string
}

func (m *mockAnalysis) AnalyzeReview(ctx context.Context, reviewText string) (*models.SingleReviewResult, error) {
	m.gotReview = reviewText
	return m.single, m.err
}

func (m *mockAnalysis) AnalyzeShop(ctx context.Context, shopQuery string) (*models.AggregateResult, error) {
	m.gotShop = shopQuery
	return m.aggregate, m.err
}

func newTestServer(t *testing.T, analysis AnalysisService) *Server {
	t.Helper()
	s, err := New(config.ServerConfig{Address: ":0", ReadTimeout: 1000, WriteTimeout: 1000}, analysis, logger.NewNoOpLogger())
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_SingleReviewFlow(t *testing.T) {
	analysis := &mockAnalysis{single: &models.SingleReviewResult{
		ReviewText:       "great place",
		DetectedLanguage: "en",
		EnglishText:      "great place",
		FakePercentage:   12,
		SentimentScore:   8.5,
		Verdict:          "Likely Real",
		Signals:          []string{},
	}}
	s := newTestServer(t, analysis)

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{"reviewText":"great place"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "great place", analysis.gotReview)

	var res models.SingleReviewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 12, res.FakePercentage)
	assert.Equal(t, "Likely Real", res.Verdict)
}

func TestAnalyze_ShopAggregateFlow(t *testing.T) {
	analysis := &mockAnalysis{aggregate: &models.AggregateResult{
		ShopName:        "Subway",
		FakePercentage:  30,
		SentimentScore:  6.4,
		ReviewsAnalyzed: 41,
		Recommendation:  "Mixed",
		Pros:            []string{"fresh"},
		Cons:            []string{"slow"},
	}}
	s := newTestServer(t, analysis)

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{"shopName":"Subway"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Subway", analysis.gotShop)

	var res models.AggregateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 41, res.ReviewsAnalyzed)
	assert.Equal(t, []string{"fresh"}, res.Pros)
}

func TestAnalyze_ReviewTextWinsOverShopName(t *testing.T) {
	analysis := &mockAnalysis{single: &models.SingleReviewResult{Verdict: "Unclear", Signals: []string{}}}
	s := newTestServer(t, analysis)

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{"reviewText":"both given","shopName":"Subway"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "both given", analysis.gotReview)
	assert.Empty(t, analysis.gotShop)
}

func TestAnalyze_BlankReviewTextFallsThroughToShopFlow(t *testing.T) {
	analysis := &mockAnalysis{aggregate: &models.AggregateResult{
		ShopName:       "Subway",
		Recommendation: "Mixed",
		Pros:           []string{},
		Cons:           []string{},
	}}
	s := newTestServer(t, analysis)

	for _, body := range []string{
		`{"reviewText":"   ","shopName":"Subway"}`,
		`{"reviewText":"\ufeff","shopName":" Subway "}`,
	} {
		rec := doRequest(t, s, http.MethodPost, "/analyze", body)
		assert.Equal(t, http.StatusOK, rec.Code, "body: %s", body)
		assert.Equal(t, "Subway", analysis.gotShop)
		assert.Empty(t, analysis.gotReview)
	}
}

func TestAnalyze_NeitherFieldGives400(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{})

	for _, body := range []string{`{}`, ``, `{"other":"field"}`} {
		rec := doRequest(t, s, http.MethodPost, "/analyze", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var res models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Provide either reviewText or shopName", res.Message)
		assert.Empty(t, res.Error)
	}
}

func TestAnalyze_SchemaViolationGives400(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{})

	for _, body := range []string{`{"reviewText":42}`, `["not","an","object"]`, `not json`} {
		rec := doRequest(t, s, http.MethodPost, "/analyze", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)

		var res models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Invalid request body", res.Message)
		// Client errors carry the message only; details stay in the log.
		assert.Empty(t, res.Error)
	}
}

func TestAnalyze_ValidationErrorFromServiceGives400(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{err: apperrors.NewValidationFailedError("empty after trimming")})

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{"reviewText":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var res models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Provide either reviewText or shopName", res.Message)
}

func TestAnalyze_ServiceErrorGives500(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{err: apperrors.NewStoreScanFailedError(fmt.Errorf("throttled"))})

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{"shopName":"Subway"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var res models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Analysis failed", res.Message)
	assert.Equal(t, "throttled", res.Error)
}

func TestAnalyze_OptionsPreflight(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{})

	rec := doRequest(t, s, http.MethodOptions, "/analyze", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "POST,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{})

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{}`)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{})

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{})

	rec := doRequest(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDAssignedAndEchoed(t *testing.T) {
	s := newTestServer(t, &mockAnalysis{})

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "upstream-id")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-Id"))
}
