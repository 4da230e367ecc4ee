// internal/common/aws/bedrock.go
package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// bedrockAPI is the slice of the Bedrock runtime client used here; tests
// substitute a fake.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient wraps the Bedrock runtime for text-in/text-out invocations
// against a fixed model.
type BedrockClient struct {
	api     bedrockAPI
	modelID string
}

// InvokeOptions carries the inference parameters for one model call.
type InvokeOptions struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Request/response shapes for the Nova messages schema.
type modelContent struct {
	Text string `json:"text"`
}

type modelMessage struct {
	Role    string         `json:"role"`
	Content []modelContent `json:"content"`
}

type modelInferenceConfig struct {
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP,omitempty"`
}

type modelRequest struct {
	System          []modelContent       `json:"system,omitempty"`
	Messages        []modelMessage       `json:"messages"`
	InferenceConfig modelInferenceConfig `json:"inferenceConfig"`
}

type modelResponse struct {
	Output struct {
		Message struct {
			Content []modelContent `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

func NewBedrockClient(ctx context.Context, region, modelID string) (*BedrockClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &BedrockClient{api: bedrockruntime.NewFromConfig(cfg), modelID: modelID}, nil
}

// NewBedrockClientFromAPI builds a client over an existing API implementation.
func NewBedrockClientFromAPI(api bedrockAPI, modelID string) *BedrockClient {
	return &BedrockClient{api: api, modelID: modelID}
}

func (b *BedrockClient) ModelID() string {
	return b.modelID
}

// InvokeText sends one system+user prompt pair and returns the first text
// block of the model's reply.
func (b *BedrockClient) InvokeText(ctx context.Context, system, prompt string, opts InvokeOptions) (string, error) {
	req := modelRequest{
		Messages: []modelMessage{
			{Role: "user", Content: []modelContent{{Text: prompt}}},
		},
		InferenceConfig: modelInferenceConfig{
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
			TopP:        opts.TopP,
		},
	}
	if system != "" {
		req.System = []modelContent{{Text: system}}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal model request: %w", err)
	}

	out, err := b.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     awssdk.String(b.modelID),
		ContentType: awssdk.String("application/json"),
		Accept:      awssdk.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", err
	}

	var resp modelResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if len(resp.Output.Message.Content) == 0 {
		return "", errors.New("model response contained no content")
	}
	return resp.Output.Message.Content[0].Text, nil
}
