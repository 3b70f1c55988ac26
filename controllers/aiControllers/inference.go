package aiControllers

import (
	"barhop/utils"
	"fmt"
	"math"
)

// FallbackReviewText is returned when both model invocations fail outright.
const FallbackReviewText = "Balanced profile."

// InferenceResult is the fully sanitized output of a rating inference.
// Degraded marks a result synthesized after total backend failure; callers
// still treat it as success.
type InferenceResult struct {
	Ratings  map[string]int
	Overall  int
	Review   string
	Degraded bool
	Reason   string
}

func clamp(n, min, max float64) float64 {
	return math.Max(min, math.Min(max, n))
}

// finiteNumber reports whether a decoded JSON value is a usable number.
func finiteNumber(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// SanitizeRatings coerces raw model output into a fully populated rating
// vector: every dimension present, clamped to [0,10], defaulting to the
// neutral midpoint 5. Runs regardless of backend success.
func SanitizeRatings(raw map[string]interface{}) map[string]int {
	ratings := make(map[string]int, len(utils.RatingCategories))
	for _, k := range utils.RatingCategories {
		if f, ok := finiteNumber(raw[k]); ok {
			ratings[k] = int(math.Round(clamp(f, 0, 10)))
		} else {
			ratings[k] = 5
		}
	}
	return ratings
}

// avgRatings rounds the mean of the named dimensions to the nearest integer.
func avgRatings(keys []string, ratings map[string]int) float64 {
	sum := 0
	for _, k := range keys {
		sum += ratings[k]
	}
	return math.Round(float64(sum) / float64(len(keys)))
}

// FallbackOverall derives an overall score when the model does not supply
// one: 0.6 taste block, 0.3 ambiance block, 0.1 sobriety nudge. The weights
// are product-tuned and load-bearing; tests pin them.
func FallbackOverall(ratings map[string]int, beersAlready int) int {
	taste := avgRatings([]string{"taste", "aroma", "smoothness", "temperature"}, ratings)
	ambiance := avgRatings([]string{"music", "lighting", "crowd_vibe", "cleanliness", "decor"}, ratings)
	sobriety := clamp(float64(10-beersAlready), 0, 10)

	return int(math.Round(0.6*taste + 0.3*ambiance + 0.1*sobriety))
}

// qualityWord maps a score to its qualitative band.
func qualityWord(n int) string {
	if n >= 8 {
		return "high"
	}
	if n >= 5 {
		return "moderate"
	}
	return "low"
}

// FallbackReview synthesizes a templated one-liner from the qualitative
// bands of four representative dimensions.
func FallbackReview(ratings map[string]int) string {
	return fmt.Sprintf("Tastes %s, %s bitterness; %s mouthfeel; %s crowd.",
		qualityWord(ratings["taste"]),
		qualityWord(ratings["bitterness"]),
		qualityWord(ratings["smoothness"]),
		qualityWord(ratings["crowd_vibe"]),
	)
}

// BuildResult sanitizes a raw model payload into a complete inference
// result, substituting deterministic values for anything missing or invalid.
func BuildResult(raw map[string]interface{}, ctx utils.RatingContext) InferenceResult {
	ratings := SanitizeRatings(raw)

	var overall int
	if f, ok := finiteNumber(raw["overall"]); ok {
		overall = int(math.Round(clamp(f, 0, 10)))
	} else {
		overall = FallbackOverall(ratings, ctx.BeersAlready)
	}

	review, _ := raw["review"].(string)
	if review == "" {
		review = FallbackReview(ratings)
	}

	return InferenceResult{Ratings: ratings, Overall: overall, Review: review}
}

// NeutralResult is the fully defaulted vector returned when inference fails
// end to end. Rating submission must never be blocked by AI unavailability.
func NeutralResult(reason string) InferenceResult {
	ratings := make(map[string]int, len(utils.RatingCategories))
	for _, k := range utils.RatingCategories {
		ratings[k] = 5
	}
	return InferenceResult{
		Ratings:  ratings,
		Overall:  5,
		Review:   FallbackReviewText,
		Degraded: true,
		Reason:   reason,
	}
}
