package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbrock/avalia-o/model"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func overallResponse(label model.Label) model.Response {
	return model.Response{Overall: label, SubmittedAt: testNow}
}

func TestAggregateEmpty(t *testing.T) {
	snap := Aggregate(nil, testNow, Options{})

	assert.Equal(t, 0, snap.Total)
	assert.Zero(t, snap.SatisfactionPct)
	assert.Zero(t, snap.AverageOverall)
	assert.Zero(t, snap.RecommendPct)
	assert.Zero(t, snap.CurrentMonthCount)

	require.Len(t, snap.LabelDistribution, len(model.Labels))
	for label, stat := range snap.LabelDistribution {
		assert.Zero(t, stat.Count, "count for %s", label)
		assert.Zero(t, stat.Pct, "pct for %s", label)
	}

	require.Len(t, snap.CategoryAverages, len(model.Categories))
	for key, avg := range snap.CategoryAverages {
		assert.Zero(t, avg, "average for %s", key)
	}
}

func TestAggregateDistribution(t *testing.T) {
	responses := []model.Response{
		overallResponse(model.Excellent),
		overallResponse(model.Good),
		overallResponse(model.Good),
		overallResponse(model.Regular),
		overallResponse(model.Poor),
	}

	snap := Aggregate(responses, testNow, Options{})

	assert.Equal(t, 5, snap.Total)
	assert.Equal(t, 3, snap.PositiveCount)
	assert.Equal(t, 1, snap.NegativeCount)
	assert.Equal(t, 1, snap.ExcellentCount)
	assert.InDelta(t, 60.0, snap.SatisfactionPct, 0.01)
	assert.InDelta(t, 3.6, snap.AverageOverall, 0.01) // (5+4+4+3+2)/5

	countSum := 0
	pctSum := 0.0
	for _, stat := range snap.LabelDistribution {
		countSum += stat.Count
		pctSum += stat.Pct
	}
	assert.Equal(t, snap.Total, countSum)
	assert.InDelta(t, 100.0, pctSum, 0.5)
}

func TestAggregateRecommendPct(t *testing.T) {
	responses := []model.Response{
		{Overall: model.Good, WouldRecommend: model.RecommendYes, SubmittedAt: testNow},
		{Overall: model.Good, WouldRecommend: model.RecommendMaybe, SubmittedAt: testNow},
		{Overall: model.Good, WouldRecommend: model.RecommendYes, SubmittedAt: testNow},
		{Overall: model.Good, WouldRecommend: model.RecommendNo, SubmittedAt: testNow},
	}

	snap := Aggregate(responses, testNow, Options{})
	assert.InDelta(t, 50.0, snap.RecommendPct, 0.01)
}

func TestAggregateCurrentMonth(t *testing.T) {
	responses := []model.Response{
		{Overall: model.Good, SubmittedAt: testNow},
		{Overall: model.Good, SubmittedAt: testNow.AddDate(0, -2, 0)},
		{Overall: model.Good, SubmittedAt: testNow.AddDate(-1, 0, 0)},
	}

	snap := Aggregate(responses, testNow, Options{})
	assert.Equal(t, 1, snap.CurrentMonthCount)
}

func TestCategoryAverageMissingCountsAsZero(t *testing.T) {
	responses := []model.Response{
		{Overall: model.Good, Cleanliness: model.Excellent, SubmittedAt: testNow},
		{Overall: model.Good, SubmittedAt: testNow},
	}

	snap := Aggregate(responses, testNow, Options{})
	assert.InDelta(t, 2.5, snap.CategoryAverages["cleanliness"], 0.01)

	excl := Aggregate(responses, testNow, Options{ExcludeMissing: true})
	assert.InDelta(t, 5.0, excl.CategoryAverages["cleanliness"], 0.01)
}

func TestCategoryAverageBounds(t *testing.T) {
	responses := []model.Response{
		{Overall: model.Excellent, Cleanliness: model.Excellent, Floors: model.VeryPoor, SubmittedAt: testNow},
		{Overall: model.VeryPoor, Restrooms: model.Regular, SubmittedAt: testNow},
		{Overall: model.Good, SubmittedAt: testNow},
	}

	snap := Aggregate(responses, testNow, Options{})
	for key, avg := range snap.CategoryAverages {
		assert.GreaterOrEqual(t, avg, 0.0, "average for %s", key)
		assert.LessOrEqual(t, avg, 5.0, "average for %s", key)
	}
}
