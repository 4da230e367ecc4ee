// internal/translation/chain.go
package translation

import (
	"context"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"golang.org/x/text/language"

	commonaws "review-analyzer/internal/common/aws"
	apperrors "review-analyzer/internal/common/errors"
	"review-analyzer/internal/common/logger"
)

const (
	translatorSystem = "You are a precise translator. Output only the translation."
	translatorPrompt = "Translate this text to English. Return ONLY the translation with no extra words."

	fallbackMaxTokens = 400
)

// TranslateAPI is the slice of the Amazon Translate client the chain needs.
type TranslateAPI interface {
	TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error)
}

// ModelInvoker is the model-fallback dependency, satisfied by the Bedrock
// client wrapper.
type ModelInvoker interface {
	InvokeText(ctx context.Context, system, prompt string, opts commonaws.InvokeOptions) (string, error)
}

// DegradationRecorder receives a signal each time a chain stage fails and a
// later stage takes over.
type DegradationRecorder interface {
	RecordDegradation(ctx context.Context, stage string)
}

// Result is the outcome of a translation attempt. Translated is false when
// the text was already in the target language or every stage failed.
type Result struct {
	Text       string
	Translated bool
}

// Chain translates text into the target language through a fixed fallback
// sequence: Translate with a known source language, Translate with source
// auto-detection, then a model prompt. The chain never returns an error; the
// worst case is the original text untranslated.
type Chain struct {
	translator TranslateAPI
	model      ModelInvoker
	target     string
	targetBase language.Base
	logger     logger.Logger
	recorder   DegradationRecorder
}

// NewChain builds a chain targeting the given language code ("en" in every
// known deployment). recorder may be nil.
func NewChain(translator TranslateAPI, model ModelInvoker, target string, log logger.Logger, recorder DegradationRecorder) *Chain {
	c := &Chain{
		translator: translator,
		model:      model,
		target:     target,
		logger:     log,
		recorder:   recorder,
	}
	if tag, err := language.Parse(target); err == nil {
		c.targetBase, _ = tag.Base()
	}
	return c
}

// TranslateIfNeeded translates text unless its detected language already
// matches the target. sourceLang may be empty or unreliable; it only selects
// which stages run, it never causes a failure.
func (c *Chain) TranslateIfNeeded(ctx context.Context, text, sourceLang string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text}
	}

	sourceLang = strings.TrimSpace(sourceLang)
	if sourceLang == "" {
		return Result{Text: text}
	}
	knownSource := true
	if tag, err := language.Parse(sourceLang); err == nil {
		if base, _ := tag.Base(); base == c.targetBase {
			return Result{Text: text}
		}
	} else {
		knownSource = false
	}

	// Translated is true only when the stage actually changed the text; a
	// stage returning the input verbatim counts as "original used".
	if knownSource {
		if out, err := c.translateWith(ctx, text, sourceLang); err == nil {
			return Result{Text: out, Translated: out != text}
		} else {
			c.degrade(ctx, "translate", sourceLang, err)
		}
	}

	if out, err := c.translateWith(ctx, text, "auto"); err == nil {
		return Result{Text: out, Translated: out != text}
	} else {
		c.degrade(ctx, "translate-auto", sourceLang, err)
	}

	if out, err := c.modelTranslate(ctx, text); err == nil {
		return Result{Text: out, Translated: out != text}
	} else {
		c.degrade(ctx, "model-fallback", sourceLang, err)
	}

	c.logger.Warn("all translation stages failed, using original text", map[string]interface{}{
		"sourceLang": sourceLang,
	})
	return Result{Text: text}
}

func (c *Chain) translateWith(ctx context.Context, text, source string) (string, error) {
	out, err := c.translator.TranslateText(ctx, &translate.TranslateTextInput{
		Text:               awssdk.String(text),
		SourceLanguageCode: awssdk.String(source),
		TargetLanguageCode: awssdk.String(c.target),
	})
	if err != nil {
		return "", err
	}
	translated := awssdk.ToString(out.TranslatedText)
	if strings.TrimSpace(translated) == "" {
		return "", errEmptyTranslation
	}
	return translated, nil
}

func (c *Chain) modelTranslate(ctx context.Context, text string) (string, error) {
	out, err := c.model.InvokeText(ctx, translatorSystem, translatorPrompt+"\n\n"+text, commonaws.InvokeOptions{
		MaxTokens:   fallbackMaxTokens,
		Temperature: 0.0,
	})
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errEmptyTranslation
	}
	return out, nil
}

func (c *Chain) degrade(ctx context.Context, stage, sourceLang string, err error) {
	stdErr := apperrors.NewTranslationFailedError(stage, err)
	c.logger.Warn("translation stage failed, falling through", map[string]interface{}{
		"code":       string(stdErr.Code),
		"sourceLang": sourceLang,
		"error":      stdErr.Details,
	})
	if c.recorder != nil {
		c.recorder.RecordDegradation(ctx, "translation."+stage)
	}
}

type chainError string

func (e chainError) Error() string { return string(e) }

const errEmptyTranslation = chainError("empty translation result")
