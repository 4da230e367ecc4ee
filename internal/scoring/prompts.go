// internal/scoring/prompts.go
package scoring

import (
	"fmt"
	"strings"
)

// systemInstruction frames every aggregate-level call. The model is asked for
// strict JSON; extractObject handles the cases where it adds prose anyway.
const systemInstruction = `You are a fact-checking and review-quality analyst.
Given a shop name and one or more user reviews, you will:
1) Estimate the percentage of likely fake/low-credibility reviews (0-100).
2) Produce an overall sentiment score from 0.0 to 10.0.
3) Return a verdict tag in ["Worth a Go!", "Mixed", "Avoid"].
4) Extract up to 4 concise pros and 4 concise cons.

Strictly output valid JSON matching this schema:
{
  "fakeRatePct": number,
  "sentimentScore": number,
  "verdict": string,
  "pros": string[],
  "cons": string[]
}

Guidelines:
- Use linguistic signals (repetition, overpromotion, bot-like patterns), contradictions across reviews, and plausibility checks.
- Be conservative: do not call something fake without signals.
- If only a shop name is provided, infer from generic public review patterns (lightweight) but keep fakeRatePct low unless evidence appears.
- Keep items short for UI tiles.`

const classifierSystem = "You are a precise JSON-only classifier."

func buildBatchPrompt(reviews []string) string {
	numbered := make([]string, 0, len(reviews))
	for i, t := range reviews {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, t))
	}

	return fmt.Sprintf(`You are a review authenticity and sentiment scorer.
For EACH review below, return strict JSON:

{
  "fake_probs": [p1, p2, ...],
  "sentiments": [s1, s2, ...]
}

Rules: arrays MUST match the number & order of reviews. Numbers only. Return ONLY JSON.
REVIEWS:
%s`, strings.Join(numbered, "\n\n"))
}

func buildSummaryPrompt(shopName, reviewsText string) string {
	if shopName == "" {
		shopName = "N/A"
	}
	reviewsText = strings.TrimSpace(reviewsText)
	if reviewsText == "" {
		reviewsText = "(none provided)"
	}

	return fmt.Sprintf(`SHOP NAME: %s
REVIEWS:
%s

Return ONLY the JSON object, no extra words.

Return ONLY the JSON.`, shopName, reviewsText)
}

func buildSinglePrompt(reviewText string) string {
	return fmt.Sprintf(`Classify ONE customer review for authenticity and sentiment.
Return ONLY this JSON:
{
  "fake_prob": <0..1>,
  "sentiment": <0..10>,
  "verdict": "Likely Fake" | "Unclear" | "Likely Real",
  "signals": ["short reason 1","short reason 2"]
}
Review:
%s`, reviewText)
}
