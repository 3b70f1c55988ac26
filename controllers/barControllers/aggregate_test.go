package barControllers

import (
	"barhop/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestComputeAggregatesPerDimensionNormalization(t *testing.T) {
	// Older rows may lack dimensions entirely; each dimension averages
	// over its own valid samples, not the total row count.
	rows := []models.Checkin{
		{Overall: intPtr(9), Music: intPtr(8)},
		{Overall: intPtr(9), Music: intPtr(8)},
	}

	scores := ComputeAggregates(rows)

	assert.Equal(t, 9.0, scores["overall"])
	assert.Equal(t, 8.0, scores["music"])
	assert.Equal(t, 0.0, scores["lighting"])
	assert.Equal(t, 0.0, scores["crowd_vibe"])
	assert.Equal(t, 0.0, scores["cleanliness"])
	assert.Equal(t, 0.0, scores["decor"])
}

func TestComputeAggregatesRoundsToOneDecimal(t *testing.T) {
	rows := []models.Checkin{
		{Music: intPtr(7), Overall: intPtr(7)},
		{Music: intPtr(8), Overall: intPtr(6)},
		{Overall: intPtr(7)},
	}

	scores := ComputeAggregates(rows)

	assert.Equal(t, 7.5, scores["music"])
	assert.InDelta(t, 6.7, scores["overall"], 0.001)
}

func TestComputeAggregatesEmpty(t *testing.T) {
	scores := ComputeAggregates(nil)
	for _, key := range []string{"music", "lighting", "crowd_vibe", "cleanliness", "decor", "overall"} {
		assert.Equal(t, 0.0, scores[key])
	}
}

func TestTopAspectsRanking(t *testing.T) {
	scores := map[string]float64{
		"music": 6.0, "lighting": 8.5, "crowd_vibe": 7.2,
		"cleanliness": 3.0, "decor": 7.9, "overall": 9.9,
	}

	aspects := TopAspects(scores)

	require.Len(t, aspects, 3)
	assert.Equal(t, "lighting", aspects[0].Key)
	assert.Equal(t, "decor", aspects[1].Key)
	assert.Equal(t, "crowd vibe", aspects[2].Key) // underscores become spaces
}

func TestComposeSummaryHighQualitySocial(t *testing.T) {
	scores := map[string]float64{
		"music": 8.0, "lighting": 5.0, "crowd_vibe": 8.0,
		"cleanliness": 6.0, "decor": 4.0, "overall": 9.0,
	}

	summary := ComposeSummary(scores)

	assert.Contains(t, summary, "known for its music, crowd vibe, cleanliness")
	assert.Contains(t, summary, "Patrons consistently rate this as a high-quality establishment.")
	assert.Contains(t, summary, "Particularly praised for excellent music.")
	assert.Contains(t, summary, "Great for social gatherings and enjoying good vibes.")
}

func TestComposeSummaryAmbiancePath(t *testing.T) {
	scores := map[string]float64{
		"music": 4.0, "lighting": 8.0, "crowd_vibe": 5.0,
		"cleanliness": 6.0, "decor": 7.5, "overall": 6.0,
	}

	summary := ComposeSummary(scores)

	assert.Contains(t, summary, "This spot offers a solid experience for most visitors.")
	assert.Contains(t, summary, "Perfect for those who appreciate ambiance and aesthetic.")
}

func TestComposeSummaryCleanlinessPath(t *testing.T) {
	scores := map[string]float64{
		"music": 4.0, "lighting": 5.0, "crowd_vibe": 5.0,
		"cleanliness": 8.5, "decor": 4.0, "overall": 5.5,
	}

	summary := ComposeSummary(scores)

	assert.Contains(t, summary, "Known for maintaining high cleanliness standards.")
}

func TestComposeSummaryMixedCasualFallback(t *testing.T) {
	scores := map[string]float64{
		"music": 3.0, "lighting": 4.0, "crowd_vibe": 4.5,
		"cleanliness": 5.0, "decor": 2.0, "overall": 4.0,
	}

	summary := ComposeSummary(scores)

	assert.Contains(t, summary, "This location has mixed reviews from the community.")
	assert.Contains(t, summary, "A casual spot for drinks and relaxation.")
}
