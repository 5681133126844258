// Package analysis holds the pure computations over the response list:
// aggregate statistics and rule-based action-item proposals. Nothing in
// here touches storage or fails; an empty list is a valid input.
package analysis

import (
	"math"
	"time"

	"github.com/deadbrock/avalia-o/model"
)

// Options tune the aggregate computation.
type Options struct {
	// ExcludeMissing drops unrated category fields from the average
	// denominator instead of counting them as zero. Off by default to
	// match the historical numbers.
	ExcludeMissing bool
}

type LabelStat struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// Snapshot is the derived statistics block the dashboard displays. It is
// recomputed from the full response list on every read and never persisted.
type Snapshot struct {
	Total             int     `json:"total"`
	PositiveCount     int     `json:"positiveCount"`
	NegativeCount     int     `json:"negativeCount"`
	SatisfactionPct   float64 `json:"satisfactionPct"`
	AverageOverall    float64 `json:"averageOverall"`
	RecommendPct      float64 `json:"recommendPct"`
	CurrentMonthCount int     `json:"currentMonthCount"`
	ExcellentCount    int     `json:"excellentCount"`

	LabelDistribution map[model.Label]LabelStat `json:"labelDistribution"`
	CategoryAverages  map[string]float64        `json:"categoryAverages"`
}

// Aggregate computes the snapshot for the given response list. now anchors
// the current-month count so the computation stays a pure function of its
// arguments.
func Aggregate(responses []model.Response, now time.Time, opts Options) Snapshot {
	snap := Snapshot{
		Total:             len(responses),
		LabelDistribution: make(map[model.Label]LabelStat, len(model.Labels)),
		CategoryAverages:  make(map[string]float64, len(model.Categories)),
	}

	counts := make(map[model.Label]int, len(model.Labels))
	overallSum := 0
	recommendYes := 0
	for _, r := range responses {
		counts[r.Overall]++
		overallSum += r.Overall.Score()

		if r.Overall.Positive() {
			snap.PositiveCount++
		}
		if r.Overall.Negative() {
			snap.NegativeCount++
		}
		if r.Overall == model.Excellent {
			snap.ExcellentCount++
		}
		if r.WouldRecommend == model.RecommendYes {
			recommendYes++
		}
		if r.SubmittedAt.Month() == now.Month() && r.SubmittedAt.Year() == now.Year() {
			snap.CurrentMonthCount++
		}
	}

	// total = 0 short-circuits every ratio to 0
	if snap.Total == 0 {
		for _, l := range model.Labels {
			snap.LabelDistribution[l] = LabelStat{}
		}
		for _, cat := range model.Categories {
			snap.CategoryAverages[cat.Key] = 0
		}
		return snap
	}

	total := float64(snap.Total)
	snap.SatisfactionPct = round1(float64(snap.PositiveCount) / total * 100)
	snap.AverageOverall = round1(float64(overallSum) / total)
	snap.RecommendPct = math.Round(float64(recommendYes) / total * 100)

	for _, l := range model.Labels {
		snap.LabelDistribution[l] = LabelStat{
			Count: counts[l],
			Pct:   round1(float64(counts[l]) / total * 100),
		}
	}

	for _, cat := range model.Categories {
		snap.CategoryAverages[cat.Key] = categoryAverage(responses, cat.Key, opts)
	}

	return snap
}

// categoryAverage maps every response's label for the category through the
// 1..5 score table, with missing ratings scoring 0. The zero keeps the
// historical semantics of dragging the average down; Options.ExcludeMissing
// switches to skipping unrated fields instead.
func categoryAverage(responses []model.Response, key string, opts Options) float64 {
	sum, n := 0, 0
	for _, r := range responses {
		label := r.Rating(key)
		if label == "" && opts.ExcludeMissing {
			continue
		}
		sum += label.Score()
		n++
	}
	if n == 0 {
		return 0
	}
	return round1(float64(sum) / float64(n))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
