// internal/language/detector_test.go
package language

import (
	"context"
	"errors"
	"strings"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/stretchr/testify/assert"

	"review-analyzer/internal/common/logger"
)

type fakeDetectAPI struct {
	singleOut *comprehend.DetectDominantLanguageOutput
	singleErr error

	batchOuts  []*comprehend.BatchDetectDominantLanguageOutput
	batchErr   error
	batchCalls []*comprehend.BatchDetectDominantLanguageInput
}

func (f *fakeDetectAPI) DetectDominantLanguage(ctx context.Context, params *comprehend.DetectDominantLanguageInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectDominantLanguageOutput, error) {
	if f.singleErr != nil {
		return nil, f.singleErr
	}
	return f.singleOut, nil
}

func (f *fakeDetectAPI) BatchDetectDominantLanguage(ctx context.Context, params *comprehend.BatchDetectDominantLanguageInput, optFns ...func(*comprehend.Options)) (*comprehend.BatchDetectDominantLanguageOutput, error) {
	f.batchCalls = append(f.batchCalls, params)
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	out := f.batchOuts[len(f.batchCalls)-1]
	return out, nil
}

func lang(code string, score float32) types.DominantLanguage {
	return types.DominantLanguage{LanguageCode: awssdk.String(code), Score: awssdk.Float32(score)}
}

func TestDetect_PicksHighestScore(t *testing.T) {
	api := &fakeDetectAPI{singleOut: &comprehend.DetectDominantLanguageOutput{
		Languages: []types.DominantLanguage{lang("fr", 0.40), lang("es", 0.55)},
	}}
	d := NewDetector(api, logger.NewNoOpLogger())

	assert.Equal(t, "es", d.Detect(context.Background(), "hola mundo"))
}

func TestDetect_DefaultsOnErrorAndEmpty(t *testing.T) {
	d := NewDetector(&fakeDetectAPI{singleErr: errors.New("throttled")}, logger.NewNoOpLogger())
	assert.Equal(t, "en", d.Detect(context.Background(), "whatever"))

	d = NewDetector(&fakeDetectAPI{}, logger.NewNoOpLogger())
	assert.Equal(t, "en", d.Detect(context.Background(), ""))

	d = NewDetector(&fakeDetectAPI{singleOut: &comprehend.DetectDominantLanguageOutput{}}, logger.NewNoOpLogger())
	assert.Equal(t, "en", d.Detect(context.Background(), "no languages returned"))
}

func TestDetectBatch_SparseResultsKeepAlignment(t *testing.T) {
	// Result for index 1 only; indexes 0 and 2 must stay English.
	api := &fakeDetectAPI{batchOuts: []*comprehend.BatchDetectDominantLanguageOutput{{
		ResultList: []types.BatchDetectDominantLanguageItemResult{
			{Index: awssdk.Int32(1), Languages: []types.DominantLanguage{lang("ja", 0.98)}},
		},
	}}}
	d := NewDetector(api, logger.NewNoOpLogger())

	codes := d.DetectBatch(context.Background(), []string{"one", "二", "three"})
	assert.Equal(t, []string{"en", "ja", "en"}, codes)
}

func TestDetectBatch_ErrorDefaultsWholeChunk(t *testing.T) {
	d := NewDetector(&fakeDetectAPI{batchErr: errors.New("boom")}, logger.NewNoOpLogger())

	codes := d.DetectBatch(context.Background(), []string{"a", "b"})
	assert.Equal(t, []string{"en", "en"}, codes)
}

func TestDetectBatch_SplitsOverBatchLimit(t *testing.T) {
	texts := make([]string, 30)
	for i := range texts {
		texts[i] = "review"
	}
	api := &fakeDetectAPI{batchOuts: []*comprehend.BatchDetectDominantLanguageOutput{
		{ResultList: []types.BatchDetectDominantLanguageItemResult{
			{Index: awssdk.Int32(0), Languages: []types.DominantLanguage{lang("de", 0.9)}},
		}},
		{ResultList: []types.BatchDetectDominantLanguageItemResult{
			{Index: awssdk.Int32(4), Languages: []types.DominantLanguage{lang("it", 0.9)}},
		}},
	}}
	d := NewDetector(api, logger.NewNoOpLogger())

	codes := d.DetectBatch(context.Background(), texts)
	assert.Len(t, api.batchCalls, 2)
	assert.Len(t, api.batchCalls[0].TextList, 25)
	assert.Len(t, api.batchCalls[1].TextList, 5)
	assert.Equal(t, "de", codes[0])
	// Index in the second call is relative to that chunk.
	assert.Equal(t, "it", codes[29])
}

func TestDetectBatch_Empty(t *testing.T) {
	d := NewDetector(&fakeDetectAPI{}, logger.NewNoOpLogger())
	assert.Empty(t, d.DetectBatch(context.Background(), nil))
}

func TestTruncate_RespectsUTF8Boundary(t *testing.T) {
	s := strings.Repeat("あ", 2000) // 3 bytes each, 6000 bytes total
	out := truncate(s, maxDetectBytes)
	assert.True(t, len(out) <= maxDetectBytes)
	for _, r := range out {
		assert.Equal(t, 'あ', r)
	}
}
