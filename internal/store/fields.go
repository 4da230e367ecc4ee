// internal/store/fields.go
package store

import (
	"fmt"
	"strings"
)

// Accepted key spellings for the two logical fields, in priority order. The
// review table has no fixed schema; uploads arrive with whatever headers the
// source spreadsheet used.
var nameKeys = []string{
	"name", "shop", "shopname", "shop_name", "place", "place_name",
	"business", "business_name", "title", "company", "company_name",
}

var reviewKeys = []string{
	"review_text", "reviewText", "review text", "review", "text", "content",
	"comment", "body", "snippet", "opinion", "Review Text", "Reviews", "review_body",
}

// foldKey lowercases a key and removes all whitespace, the equivalence under
// which record keys are matched.
func foldKey(k string) string {
	return strings.Join(strings.Fields(strings.ToLower(k)), "")
}

// readField resolves the first candidate key present in the record with a
// non-nil value. The case-normalized lookup table is built once per record,
// not per candidate.
func readField(record map[string]interface{}, candidates []string) (interface{}, bool) {
	index := make(map[string]string, len(record))
	for k := range record {
		index[foldKey(k)] = k
	}
	for _, c := range candidates {
		if k, ok := index[foldKey(c)]; ok {
			if v := record[k]; v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
