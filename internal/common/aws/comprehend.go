// internal/common/aws/comprehend.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
)

type ComprehendClient struct {
	client *comprehend.Client
}

func NewComprehendClient(ctx context.Context, region string) (*ComprehendClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &ComprehendClient{client: comprehend.NewFromConfig(cfg)}, nil
}

func (c *ComprehendClient) DetectDominantLanguage(ctx context.Context, input *comprehend.DetectDominantLanguageInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectDominantLanguageOutput, error) {
	return c.client.DetectDominantLanguage(ctx, input, optFns...)
}

func (c *ComprehendClient) BatchDetectDominantLanguage(ctx context.Context, input *comprehend.BatchDetectDominantLanguageInput, optFns ...func(*comprehend.Options)) (*comprehend.BatchDetectDominantLanguageOutput, error) {
	return c.client.BatchDetectDominantLanguage(ctx, input, optFns...)
}
