// internal/scoring/engine.go
package scoring

import (
	"context"
	"math"
	"strconv"

	commonaws "review-analyzer/internal/common/aws"
	apperrors "review-analyzer/internal/common/errors"
	"review-analyzer/internal/common/logger"
)

// Inference settings per call shape. Batch and single classification run cold;
// the qualitative summary gets a little temperature for readable pros/cons.
var (
	batchOpts   = commonaws.InvokeOptions{MaxTokens: 400, Temperature: 0.0, TopP: 0.9}
	summaryOpts = commonaws.InvokeOptions{MaxTokens: 500, Temperature: 0.2, TopP: 0.9}
	singleOpts  = commonaws.InvokeOptions{MaxTokens: 250, Temperature: 0.0, TopP: 0.9}
)

// ModelInvoker is the inference dependency, satisfied by the Bedrock client
// wrapper.
type ModelInvoker interface {
	InvokeText(ctx context.Context, system, prompt string, opts commonaws.InvokeOptions) (string, error)
}

// DegradationRecorder counts recovered scoring failures.
type DegradationRecorder interface {
	RecordDegradation(ctx context.Context, stage string)
}

// BatchScores holds the per-review score arrays from one batch call. Entries
// the model returned as non-numeric are carried as NaN; the aggregator
// excludes non-finite samples rather than counting them as zero. The arrays
// may be shorter than the input batch, or empty after a degradation.
type BatchScores struct {
	FakeProbs  []float64
	Sentiments []float64
}

// Summary is the qualitative half of an aggregate result.
type Summary struct {
	Recommendation string
	Pros           []string
	Cons           []string
}

// SingleResult is the classification of one review.
type SingleResult struct {
	FakePercentage int
	SentimentScore float64
	Verdict        string
	Signals        []string
}

// Engine issues the three inference call shapes and applies the lenient
// response-parsing policy.
type Engine struct {
	model    ModelInvoker
	logger   logger.Logger
	recorder DegradationRecorder
}

// NewEngine builds an engine. recorder may be nil.
func NewEngine(model ModelInvoker, log logger.Logger, recorder DegradationRecorder) *Engine {
	return &Engine{model: model, logger: log, recorder: recorder}
}

// ScoreBatch scores a chunk of English review texts in one call. It never
// fails: an invoke error or unparseable reply degrades to empty arrays, which
// contribute nothing to the aggregate.
func (e *Engine) ScoreBatch(ctx context.Context, reviews []string) BatchScores {
	if len(reviews) == 0 {
		return BatchScores{}
	}

	text, err := e.model.InvokeText(ctx, systemInstruction, buildBatchPrompt(reviews), batchOpts)
	if err != nil {
		e.degrade(ctx, "score-batch", apperrors.NewModelInvokeFailedError(err))
		return BatchScores{}
	}

	obj := extractObject(text)
	scores := BatchScores{
		FakeProbs:  toFloats(obj["fake_probs"]),
		Sentiments: toFloats(obj["sentiments"]),
	}
	if len(scores.FakeProbs) == 0 && len(scores.Sentiments) == 0 {
		e.degrade(ctx, "score-batch-parse", apperrors.NewModelParseFailedError("no score arrays in model reply"))
	}
	return scores
}

// Summarize requests the verdict, pros, and cons for a shop from its combined
// review text. Failures degrade to a "Mixed" verdict with empty lists; the
// numeric aggregate is computed independently of this call.
func (e *Engine) Summarize(ctx context.Context, shopName, reviewsText string) Summary {
	fallback := Summary{Recommendation: "Mixed", Pros: []string{}, Cons: []string{}}

	text, err := e.model.InvokeText(ctx, systemInstruction, buildSummaryPrompt(shopName, reviewsText), summaryOpts)
	if err != nil {
		e.degrade(ctx, "summarize", apperrors.NewSummaryFailedError(err))
		return fallback
	}

	obj := extractObject(text)
	summary := fallback
	if v, ok := obj["verdict"].(string); ok && v != "" {
		summary.Recommendation = v
	}
	summary.Pros = toStrings(obj["pros"], 4)
	summary.Cons = toStrings(obj["cons"], 4)
	return summary
}

// ScoreSingle classifies one English review. The invoke failure is the only
// error path; a malformed reply degrades field by field (zero scores, verdict
// "Unclear").
func (e *Engine) ScoreSingle(ctx context.Context, reviewText string) (SingleResult, error) {
	text, err := e.model.InvokeText(ctx, classifierSystem, buildSinglePrompt(reviewText), singleOpts)
	if err != nil {
		return SingleResult{}, apperrors.NewModelInvokeFailedError(err)
	}

	obj := extractObject(text)
	fakeProb := clamp(toFloat(obj["fake_prob"]), 0, 1)
	sentiment := clamp(toFloat(obj["sentiment"]), 0, 10)

	result := SingleResult{
		FakePercentage: int(math.Round(fakeProb * 100)),
		SentimentScore: math.Round(sentiment*10) / 10,
		Verdict:        "Unclear",
		Signals:        toStrings(obj["signals"], 4),
	}
	if v, ok := obj["verdict"].(string); ok && v != "" {
		result.Verdict = v
	}
	return result, nil
}

func (e *Engine) degrade(ctx context.Context, stage string, stdErr *apperrors.StandardError) {
	e.logger.Warn("scoring degraded to defaults", map[string]interface{}{
		"stage":     stage,
		"code":      string(stdErr.Code),
		"retryable": stdErr.Retryable,
		"detail":    stdErr.Details,
	})
	if e.recorder != nil {
		e.recorder.RecordDegradation(ctx, "scoring."+stage)
	}
}

// toFloats coerces a decoded JSON value into a float slice. Non-numeric
// entries become NaN so the aggregator can exclude them without shifting
// array alignment.
func toFloats(v interface{}) []float64 {
	arr, ok := v.([]interface{})
	if !ok {
		return []float64{}
	}
	out := make([]float64, 0, len(arr))
	for _, item := range arr {
		out = append(out, toFloat(item))
	}
	return out
}

func toFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

func toStrings(v interface{}, limit int) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, limit)
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// clamp pins a value into [lo, hi], mapping non-finite input to zero.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Min(hi, math.Max(lo, v))
}
