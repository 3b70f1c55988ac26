package barControllers

import (
	"barhop/models"
	"math"
	"sort"
	"strings"
)

// InsufficientDataSummary is returned for bars with no check-ins yet.
const InsufficientDataSummary = "Not enough data available for this bar yet."

// summaryDimensions are the dimensions tracked in the venue aggregate, in
// display order. "overall" is tracked but never ranked as an aspect.
var summaryDimensions = []string{"music", "lighting", "crowd_vibe", "cleanliness", "decor", "overall"}

// Aspect is one ranked summary dimension with its display name.
type Aspect struct {
	Key   string
	Score float64
}

func dimensionValue(c *models.Checkin, key string) *int {
	switch key {
	case "music":
		return c.Music
	case "lighting":
		return c.Lighting
	case "crowd_vibe":
		return c.CrowdVibe
	case "cleanliness":
		return c.Cleanliness
	case "decor":
		return c.Decor
	case "overall":
		return c.Overall
	}
	return nil
}

// ComputeAggregates averages each tracked dimension over the rows that carry
// a valid (non-nil, non-negative) sample for it. Each dimension normalizes by
// its own sample count, rounded to one decimal; no valid samples yields 0.
func ComputeAggregates(rows []models.Checkin) map[string]float64 {
	sums := make(map[string]float64, len(summaryDimensions))
	counts := make(map[string]int, len(summaryDimensions))

	for i := range rows {
		for _, key := range summaryDimensions {
			v := dimensionValue(&rows[i], key)
			if v != nil && *v >= 0 {
				sums[key] += float64(*v)
				counts[key]++
			}
		}
	}

	scores := make(map[string]float64, len(summaryDimensions))
	for _, key := range summaryDimensions {
		if counts[key] > 0 {
			scores[key] = math.Round(sums[key]/float64(counts[key])*10) / 10
		} else {
			scores[key] = 0
		}
	}
	return scores
}

// TopAspects ranks the non-overall dimensions descending by score and
// returns the top three, underscores replaced for display.
func TopAspects(scores map[string]float64) []Aspect {
	aspects := make([]Aspect, 0, len(summaryDimensions)-1)
	for _, key := range summaryDimensions {
		if key == "overall" {
			continue
		}
		aspects = append(aspects, Aspect{
			Key:   strings.ReplaceAll(key, "_", " "),
			Score: scores[key],
		})
	}

	sort.SliceStable(aspects, func(i, j int) bool {
		return aspects[i].Score > aspects[j].Score
	})

	if len(aspects) > 3 {
		aspects = aspects[:3]
	}
	return aspects
}

// ComposeSummary builds the deterministic venue summary: top aspects, a
// quality clause banded on overall, praise for a strong top aspect, and an
// atmosphere clause picked by fixed priority. Thresholds are product-tuned
// and preserved as-is.
func ComposeSummary(scores map[string]float64) string {
	topAspects := TopAspects(scores)

	names := make([]string, 0, len(topAspects))
	for _, a := range topAspects {
		names = append(names, a.Key)
	}

	var b strings.Builder
	b.WriteString("This bar is known for its " + strings.Join(names, ", ") + ". ")

	switch {
	case scores["overall"] >= 7:
		b.WriteString("Patrons consistently rate this as a high-quality establishment. ")
	case scores["overall"] >= 5:
		b.WriteString("This spot offers a solid experience for most visitors. ")
	default:
		b.WriteString("This location has mixed reviews from the community. ")
	}

	if len(topAspects) > 0 && topAspects[0].Score >= 7 {
		b.WriteString("Particularly praised for excellent " + topAspects[0].Key + ". ")
	}

	switch {
	case scores["music"] >= 7 && scores["crowd_vibe"] >= 7:
		b.WriteString("Great for social gatherings and enjoying good vibes.")
	case scores["lighting"] >= 7 && scores["decor"] >= 7:
		b.WriteString("Perfect for those who appreciate ambiance and aesthetic.")
	case scores["cleanliness"] >= 8:
		b.WriteString("Known for maintaining high cleanliness standards.")
	default:
		b.WriteString("A casual spot for drinks and relaxation.")
	}

	return b.String()
}
