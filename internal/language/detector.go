// internal/language/detector.go
package language

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"

	apperrors "review-analyzer/internal/common/errors"
	"review-analyzer/internal/common/logger"
)

// DefaultLanguage is assumed whenever detection fails or returns nothing.
// Detection is best-effort; a wrong guess only costs an unnecessary
// translation attempt downstream.
const DefaultLanguage = "en"

// Comprehend caps batch detection at 25 documents per call.
const batchLimit = 25

// Single documents over this many bytes are truncated before detection; the
// leading text is plenty for a dominant-language call.
const maxDetectBytes = 4500

// DetectAPI is the slice of the Comprehend client the detector needs.
type DetectAPI interface {
	DetectDominantLanguage(ctx context.Context, params *comprehend.DetectDominantLanguageInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectDominantLanguageOutput, error)
	BatchDetectDominantLanguage(ctx context.Context, params *comprehend.BatchDetectDominantLanguageInput, optFns ...func(*comprehend.Options)) (*comprehend.BatchDetectDominantLanguageOutput, error)
}

// Detector wraps dominant-language detection with the pipeline's degradation
// policy: failures never propagate, they fall back to English.
type Detector struct {
	api    DetectAPI
	logger logger.Logger
}

func NewDetector(api DetectAPI, log logger.Logger) *Detector {
	return &Detector{api: api, logger: log}
}

// Detect returns the dominant language code of a single text, or
// DefaultLanguage when the text is empty, the call fails, or no language
// comes back.
func (d *Detector) Detect(ctx context.Context, text string) string {
	text = truncate(text, maxDetectBytes)
	if text == "" {
		return DefaultLanguage
	}

	out, err := d.api.DetectDominantLanguage(ctx, &comprehend.DetectDominantLanguageInput{
		Text: awssdk.String(text),
	})
	if err != nil {
		stdErr := apperrors.NewLanguageDetectFailedError(err)
		d.logger.Warn("language detection failed, assuming English", map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
		return DefaultLanguage
	}

	best := DefaultLanguage
	var bestScore float32 = -1
	for _, lang := range out.Languages {
		if lang.LanguageCode == nil {
			continue
		}
		score := awssdk.ToFloat32(lang.Score)
		if score > bestScore {
			best = awssdk.ToString(lang.LanguageCode)
			bestScore = score
		}
	}
	return best
}

// DetectBatch returns one language code per input text, aligned by index.
// Every slot starts as DefaultLanguage and is only overwritten by an explicit
// per-index result, so sparse or partial responses degrade to English rather
// than shifting alignment.
func (d *Detector) DetectBatch(ctx context.Context, texts []string) []string {
	codes := make([]string, len(texts))
	for i := range codes {
		codes[i] = DefaultLanguage
	}
	if len(texts) == 0 {
		return codes
	}

	for offset := 0; offset < len(texts); offset += batchLimit {
		end := offset + batchLimit
		if end > len(texts) {
			end = len(texts)
		}

		chunk := make([]string, 0, end-offset)
		for _, t := range texts[offset:end] {
			chunk = append(chunk, truncate(t, maxDetectBytes))
		}

		out, err := d.api.BatchDetectDominantLanguage(ctx, &comprehend.BatchDetectDominantLanguageInput{
			TextList: chunk,
		})
		if err != nil {
			stdErr := apperrors.NewLanguageDetectFailedError(err)
			d.logger.Warn("batch language detection failed, assuming English for chunk", map[string]interface{}{
				"code":   string(stdErr.Code),
				"offset": offset,
				"size":   len(chunk),
				"error":  stdErr.Details,
			})
			continue
		}

		for _, res := range out.ResultList {
			if res.Index == nil || len(res.Languages) == 0 {
				continue
			}
			i := offset + int(awssdk.ToInt32(res.Index))
			if i < 0 || i >= len(codes) {
				continue
			}

			best := DefaultLanguage
			var bestScore float32 = -1
			for _, lang := range res.Languages {
				if lang.LanguageCode == nil {
					continue
				}
				score := awssdk.ToFloat32(lang.Score)
				if score > bestScore {
					best = awssdk.ToString(lang.LanguageCode)
					bestScore = score
				}
			}
			codes[i] = best
		}
	}
	return codes
}

func truncate(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	b := []byte(s)[:maxBytes]
	// Back off a partial UTF-8 sequence at the cut point.
	for len(b) > 0 && b[len(b)-1]&0xC0 == 0x80 {
		b = b[:len(b)-1]
	}
	return string(b)
}
