// internal/models/analysis.go
package models

// AnalyzeRequest is the body of POST /analyze. Exactly one of the two fields
// selects the flow; ReviewText wins when both are present.
type AnalyzeRequest struct {
	ReviewText string `json:"reviewText,omitempty"`
	ShopName   string `json:"shopName,omitempty"`
}

// AggregateResult is the response of the shop-aggregate flow.
type AggregateResult struct {
	ShopName        string   `json:"shopName"`
	FakePercentage  int      `json:"fakePercentage"`
	SentimentScore  float64  `json:"sentimentScore"`
	ReviewsAnalyzed int      `json:"reviewsAnalyzed"`
	Recommendation  string   `json:"recommendation"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
}

// SingleReviewResult is the response of the single-review flow. EnglishText
// always carries something usable: the translation when one happened, the
// original text otherwise.
type SingleReviewResult struct {
	ReviewText           string   `json:"reviewText"`
	DetectedLanguage     string   `json:"detectedLanguage"`
	TranslatedForBedrock bool     `json:"translatedForBedrock"`
	EnglishText          string   `json:"englishText"`
	FakePercentage       int      `json:"fakePercentage"`
	SentimentScore       float64  `json:"sentimentScore"`
	Verdict              string   `json:"verdict"`
	Signals              []string `json:"signals"`
}

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
