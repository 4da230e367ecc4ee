// internal/store/scanner.go
package store

import (
	"context"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	apperrors "review-analyzer/internal/common/errors"
	"review-analyzer/internal/common/logger"
	"review-analyzer/internal/textutil"
)

// ScanAPI is the slice of the DynamoDB client the scanner needs.
type ScanAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Scanner pages through the review table and collects review texts whose
// shop name fuzzy-matches a target.
type Scanner struct {
	api    ScanAPI
	table  string
	logger logger.Logger
}

func NewScanner(api ScanAPI, table string, log logger.Logger) *Scanner {
	return &Scanner{
		api:    api,
		table:  table,
		logger: log.WithFields(map[string]interface{}{"table": table}),
	}
}

// GatherReviews scans the full table, filtering rows whose name field
// matches shopName under the fuzzy name policy, and returns up to limit
// trimmed review texts. A failed page fetch is fatal to the scan; there is
// no partial-result fallback for store errors.
func (s *Scanner) GatherReviews(ctx context.Context, shopName string, limit int) ([]string, error) {
	target := textutil.Normalize(shopName)
	matched := make([]string, 0, 64)

	var lastKey map[string]types.AttributeValue
	pages := 0
	for {
		out, err := s.api.Scan(ctx, &dynamodb.ScanInput{
			TableName:         awssdk.String(s.table),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, apperrors.NewStoreScanFailedError(err)
		}
		pages++

		for _, item := range out.Items {
			var row map[string]interface{}
			if err := attributevalue.UnmarshalMap(item, &row); err != nil {
				s.logger.Debug("skipping unreadable row", map[string]interface{}{"error": err.Error()})
				continue
			}

			nameVal, ok := readField(row, nameKeys)
			if !ok {
				continue
			}
			if !textutil.MatchNames(textutil.Normalize(asString(nameVal)), target) {
				continue
			}

			textVal, ok := readField(row, reviewKeys)
			if !ok {
				continue
			}
			text, ok := textVal.(string)
			if !ok {
				continue
			}
			if text = strings.TrimSpace(text); text == "" {
				continue
			}

			matched = append(matched, text)
			if len(matched) >= limit {
				break
			}
		}

		lastKey = out.LastEvaluatedKey
		if len(matched) >= limit || len(lastKey) == 0 {
			break
		}
	}

	s.logger.Info("record scan complete", map[string]interface{}{
		"shopName": shopName,
		"pages":    pages,
		"matched":  len(matched),
	})
	return matched, nil
}
