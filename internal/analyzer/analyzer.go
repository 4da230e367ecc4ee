// internal/analyzer/analyzer.go
package analyzer

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "review-analyzer/internal/common/errors"
	"review-analyzer/internal/common/logger"
	"review-analyzer/internal/common/observability"
	"review-analyzer/internal/models"
	"review-analyzer/internal/scoring"
	"review-analyzer/internal/translation"
)

// Pipeline tuning constants. These are fixed, not configuration: they encode
// the inference service's practical limits and the cost ceiling per request.
const (
	MinReviews      = 3
	ChunkSize       = 20
	HardCapReviews  = 400
	SummaryMaxChars = 12000
)

// ReviewStore pages matching review texts out of the record store.
type ReviewStore interface {
	GatherReviews(ctx context.Context, shopName string, limit int) ([]string, error)
}

// LanguageDetector guesses dominant languages, defaulting to English.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) string
	DetectBatch(ctx context.Context, texts []string) []string
}

// Translator brings text into the scoring language, best effort.
type Translator interface {
	TranslateIfNeeded(ctx context.Context, text, sourceLang string) translation.Result
}

// ScoreEngine issues the inference calls.
type ScoreEngine interface {
	ScoreBatch(ctx context.Context, reviews []string) scoring.BatchScores
	Summarize(ctx context.Context, shopName, reviewsText string) scoring.Summary
	ScoreSingle(ctx context.Context, reviewText string) (scoring.SingleResult, error)
}

// ShopResolver maps free-text queries to canonical shop names. Resolution is
// advisory; a declined query is scanned as typed.
type ShopResolver interface {
	Resolve(query string) (string, bool)
}

// Analyzer orchestrates both analysis flows over the downstream services.
type Analyzer struct {
	resolver   ShopResolver
	store      ReviewStore
	detector   LanguageDetector
	translator Translator
	engine     ScoreEngine
	logger     logger.Logger
	obs        *observability.Observability
}

func New(res ShopResolver, store ReviewStore, detector LanguageDetector, translator Translator, engine ScoreEngine, log logger.Logger, obs *observability.Observability) *Analyzer {
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Analyzer{
		resolver:   res,
		store:      store,
		detector:   detector,
		translator: translator,
		engine:     engine,
		logger:     log,
		obs:        obs,
	}
}

// AnalyzeReview classifies one review: detect its language, bring it into
// English, score it. The response always echoes the original text and the
// detection outcome alongside the scores.
func (a *Analyzer) AnalyzeReview(ctx context.Context, reviewText string) (*models.SingleReviewResult, error) {
	started := time.Now()

	reviewText = SanitizeReviewText(reviewText)
	if reviewText == "" {
		a.obs.RecordAnalysis(ctx, "single", "invalid")
		return nil, apperrors.NewValidationFailedError("reviewText is empty after trimming")
	}

	lang := a.detector.Detect(ctx, reviewText)
	translated := a.translator.TranslateIfNeeded(ctx, reviewText, lang)

	scored, err := a.engine.ScoreSingle(ctx, translated.Text)
	if err != nil {
		a.obs.RecordAnalysis(ctx, "single", "error")
		return nil, err
	}

	englishText := reviewText
	if translated.Translated {
		englishText = translated.Text
	}

	a.obs.RecordAnalysis(ctx, "single", "ok")
	a.obs.RecordAnalysisDuration(ctx, time.Since(started), "single")
	a.obs.RecordReviewsScored(ctx, 1)
	a.logger.Info("single review analyzed", map[string]interface{}{
		"detectedLanguage": lang,
		"translated":       translated.Translated,
		"verdict":          scored.Verdict,
	})

	return &models.SingleReviewResult{
		ReviewText:           reviewText,
		DetectedLanguage:     lang,
		TranslatedForBedrock: translated.Translated,
		EnglishText:          englishText,
		FakePercentage:       scored.FakePercentage,
		SentimentScore:       scored.SentimentScore,
		Verdict:              scored.Verdict,
		Signals:              scored.Signals,
	}, nil
}

// AnalyzeShop runs the aggregate flow: resolve the query, gather matching
// reviews, score them in chunks, average, then summarize. Store failures
// abort the request; every AI-service failure degrades locally.
func (a *Analyzer) AnalyzeShop(ctx context.Context, shopQuery string) (*models.AggregateResult, error) {
	started := time.Now()

	shopName := strings.TrimSpace(shopQuery)
	if shopName == "" {
		a.obs.RecordAnalysis(ctx, "aggregate", "invalid")
		return nil, apperrors.NewValidationFailedError("shopName is empty after trimming")
	}
	if canonical, ok := a.resolver.Resolve(shopName); ok && canonical != shopName {
		a.logger.Info("shop query resolved to canonical name", map[string]interface{}{
			"query":     shopName,
			"canonical": canonical,
		})
		shopName = canonical
	}

	matched, err := a.store.GatherReviews(ctx, shopName, HardCapReviews)
	if err != nil {
		a.obs.RecordAnalysis(ctx, "aggregate", "error")
		return nil, err
	}

	reviewsAnalyzed := len(matched)
	if reviewsAnalyzed < MinReviews {
		a.obs.RecordAnalysis(ctx, "aggregate", "insufficient")
		a.logger.Info("not enough reviews to aggregate", map[string]interface{}{
			"shopName": shopName,
			"matched":  reviewsAnalyzed,
		})
		return &models.AggregateResult{
			ShopName:        shopName,
			ReviewsAnalyzed: reviewsAnalyzed,
			Recommendation:  "Not enough data",
			Pros:            []string{},
			Cons:            []string{},
		}, nil
	}

	langs := a.detector.DetectBatch(ctx, matched)

	// Translated texts are kept for the summary corpus so the second pass
	// over the full set reuses the chunk-loop work.
	english := make([]string, len(matched))
	var sumFake, sumSent float64
	var nFake, nSent int

	for i := 0; i < len(matched); i += ChunkSize {
		end := i + ChunkSize
		if end > len(matched) {
			end = len(matched)
		}

		chunk := make([]string, 0, end-i)
		for k := i; k < end; k++ {
			res := a.translator.TranslateIfNeeded(ctx, matched[k], langs[k])
			english[k] = res.Text
			chunk = append(chunk, res.Text)
		}

		scores := a.engine.ScoreBatch(ctx, chunk)
		for _, p := range scores.FakeProbs {
			if isFinite(p) {
				sumFake += p
				nFake++
			}
		}
		for _, s := range scores.Sentiments {
			if isFinite(s) {
				sumSent += s
				nSent++
			}
		}
	}

	var fakePercentage int
	if nFake > 0 {
		fakePercentage = int(math.Round(100 * sumFake / float64(nFake)))
	}
	var sentimentScore float64
	if nSent > 0 {
		sentimentScore = math.Round(sumSent/float64(nSent)*10) / 10
	}

	// SummaryMaxChars counts characters, not bytes, so multibyte reviews are
	// not cut shorter than ASCII ones.
	corpus := strings.Join(english, "\n\n")
	if utf8.RuneCountInString(corpus) > SummaryMaxChars {
		corpus = string([]rune(corpus)[:SummaryMaxChars])
	}
	summary := a.engine.Summarize(ctx, shopName, corpus)

	a.obs.RecordAnalysis(ctx, "aggregate", "ok")
	a.obs.RecordAnalysisDuration(ctx, time.Since(started), "aggregate")
	a.obs.RecordReviewsScored(ctx, reviewsAnalyzed)
	a.logger.Info("shop aggregate analyzed", map[string]interface{}{
		"shopName":        shopName,
		"reviewsAnalyzed": reviewsAnalyzed,
		"fakePercentage":  fakePercentage,
		"sentimentScore":  sentimentScore,
		"validFakeProbs":  nFake,
		"validSentiments": nSent,
	})

	return &models.AggregateResult{
		ShopName:        shopName,
		FakePercentage:  fakePercentage,
		SentimentScore:  sentimentScore,
		ReviewsAnalyzed: reviewsAnalyzed,
		Recommendation:  summary.Recommendation,
		Pros:            summary.Pros,
		Cons:            summary.Cons,
	}, nil
}

// SanitizeReviewText strips a leading BOM and surrounding whitespace. A stray
// BOM skews language detection toward the wrong script.
func SanitizeReviewText(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
