package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/deadbrock/avalia-o/model"
)

const (
	OwnerQuality    = "Quality Supervisor"
	OwnerOperations = "Operations Manager"
)

// Config tunes the proposal generator. The thresholds are operational
// knobs, not invariants; the zero value gets the defaults below.
type Config struct {
	TopProblems     int // how many recurring problems become proposals
	HighThreshold   int // occurrences at or above this rank high priority
	MediumThreshold int // occurrences at or above this rank medium priority
	SuggestionLimit int // how many free-text suggestions become proposals
	Now             func() time.Time
}

func (cfg Config) withDefaults() Config {
	if cfg.TopProblems == 0 {
		cfg.TopProblems = 5
	}
	if cfg.HighThreshold == 0 {
		cfg.HighThreshold = 3
	}
	if cfg.MediumThreshold == 0 {
		cfg.MediumThreshold = 2
	}
	if cfg.SuggestionLimit == 0 {
		cfg.SuggestionLimit = 3
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return cfg
}

// Recommend scans the responses for recurring poor ratings and customer
// suggestions and synthesizes action-item proposals. Proposals carry a zero
// id: they are not persisted until explicitly confirmed. The output order
// is deterministic: recurring problems by occurrence count descending
// (ties in first-seen order), then suggestions in list order, then the
// maintenance fallback when nothing else triggered.
func Recommend(responses []model.Response, cfg Config) []model.ActionItem {
	cfg = cfg.withDefaults()
	now := cfg.Now()

	proposals := problemProposals(responses, cfg, now)
	proposals = append(proposals, suggestionProposals(responses, cfg, now)...)

	if len(proposals) == 0 {
		proposals = append(proposals, model.ActionItem{
			Title:       "Maintain Service Quality",
			Description: "No critical problems identified. Keep the current quality standard and continue monitoring incoming evaluations.",
			Category:    model.GroupQuality,
			Priority:    model.PriorityLow,
			Status:      model.StatusPending,
			Owner:       OwnerQuality,
			DueDate:     dueDate(now, 30),
		})
	}
	return proposals
}

func problemProposals(responses []model.Response, cfg Config, now time.Time) []model.ActionItem {
	counts := make(map[int]int, len(model.Categories))
	var order []int // category indexes in first-hit order, for stable ties
	for _, r := range responses {
		for i, cat := range model.Categories {
			if r.Rating(cat.Key).Negative() {
				if counts[i] == 0 {
					order = append(order, i)
				}
				counts[i]++
			}
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if len(order) > cfg.TopProblems {
		order = order[:cfg.TopProblems]
	}

	proposals := make([]model.ActionItem, 0, len(order))
	for _, i := range order {
		cat := model.Categories[i]
		n := counts[i]

		priority := model.PriorityLow
		switch {
		case n >= cfg.HighThreshold:
			priority = model.PriorityHigh
		case n >= cfg.MediumThreshold:
			priority = model.PriorityMedium
		}

		proposals = append(proposals, model.ActionItem{
			Title: "Improve " + cat.Name,
			Description: fmt.Sprintf(
				"Recurring problem identified in %q. %d evaluation(s) reported dissatisfaction in this aspect. Immediate action plan required.",
				cat.Name, n),
			Category: cat.Group,
			Priority: priority,
			Status:   model.StatusPending,
			Owner:    OwnerQuality,
			DueDate:  dueDate(now, 7),
		})
	}
	return proposals
}

func suggestionProposals(responses []model.Response, cfg Config, now time.Time) []model.ActionItem {
	var proposals []model.ActionItem
	for _, r := range responses {
		if r.ImprovementDescription == "" {
			continue
		}
		if len(proposals) == cfg.SuggestionLimit {
			break
		}

		area := r.ImprovementArea
		if area == "" {
			area = model.GroupGeneral
		}

		proposals = append(proposals, model.ActionItem{
			Title:       "Customer Suggestion - " + area,
			Description: fmt.Sprintf("Suggestion from %s: %q", r.Name, r.ImprovementDescription),
			Category:    area,
			Priority:    model.PriorityMedium,
			Status:      model.StatusPending,
			Owner:       OwnerOperations,
			DueDate:     dueDate(now, 14),
		})
	}
	return proposals
}

func dueDate(now time.Time, days int) string {
	return now.AddDate(0, 0, days).Format("2006-01-02")
}
