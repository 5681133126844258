package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Label is one of the five canonical rating labels.
type Label string

const (
	Excellent Label = "Excellent"
	Good      Label = "Good"
	Regular   Label = "Regular"
	Poor      Label = "Poor"
	VeryPoor  Label = "Very Poor"
)

// Labels in display order, best to worst.
var Labels = []Label{Excellent, Good, Regular, Poor, VeryPoor}

var labelScores = map[Label]int{
	Excellent: 5,
	Good:      4,
	Regular:   3,
	Poor:      2,
	VeryPoor:  1,
}

// Score maps a label to its 1..5 value. A missing or unknown label scores 0.
func (l Label) Score() int {
	return labelScores[l]
}

func (l Label) Valid() bool {
	_, ok := labelScores[l]
	return ok
}

// Negative reports whether the label signals dissatisfaction.
func (l Label) Negative() bool {
	return l == Poor || l == VeryPoor
}

// Positive reports whether the label signals satisfaction.
func (l Label) Positive() bool {
	return l == Excellent || l == Good
}

const (
	RecommendYes   = "Yes"
	RecommendMaybe = "Maybe"
	RecommendNo    = "No"
)

// Response is one submitted customer evaluation.
type Response struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location"`
	ServiceDate string `json:"serviceDate"`

	// Service and communication
	Cordiality     Label `json:"cordiality,omitempty"`
	Communication  Label `json:"communication,omitempty"`
	Responsiveness Label `json:"responsiveness,omitempty"`

	// Service quality
	Cleanliness     Label `json:"cleanliness,omitempty"`
	Restrooms       Label `json:"restrooms,omitempty"`
	Floors          Label `json:"floors,omitempty"`
	Materials       Label `json:"materials,omitempty"`
	SafetyProtocols Label `json:"safetyProtocols,omitempty"`

	// Punctuality and frequency
	ScheduleAdherence     Label `json:"scheduleAdherence,omitempty"`
	CleaningReinforcement Label `json:"cleaningReinforcement,omitempty"`
	StaffSubstitution     Label `json:"staffSubstitution,omitempty"`

	// Professional conduct
	Responsibility       Label `json:"responsibility,omitempty"`
	PersonalPresentation Label `json:"personalPresentation,omitempty"`
	Conduct              Label `json:"conduct,omitempty"`

	// Management and supervision
	SupervisorFollowUp      Label `json:"supervisorFollowUp,omitempty"`
	NonconformityCorrection Label `json:"nonconformityCorrection,omitempty"`
	ContractManagement      Label `json:"contractManagement,omitempty"`

	// Overall satisfaction
	Overall                Label  `json:"overall"`
	WouldRecommend         string `json:"wouldRecommend,omitempty"`
	ImprovementArea        string `json:"improvementArea,omitempty"`
	ImprovementDescription string `json:"improvementDescription,omitempty"`
	Praise                 string `json:"praise,omitempty"`

	SubmittedAt time.Time `json:"submittedAt"`
}

// Category describes one rated service aspect.
type Category struct {
	Key   string
	Name  string
	Group string
}

const (
	GroupService         = "Service"
	GroupQuality         = "Quality"
	GroupSafety          = "Safety"
	GroupPunctuality     = "Punctuality"
	GroupProfessionalism = "Professionalism"
	GroupManagement      = "Management"
	GroupGeneral         = "General"
)

// Categories lists every rated aspect except the overall rating,
// in form order. Iteration order is load-bearing for the
// recommendation generator's tie-breaking.
var Categories = []Category{
	{"cordiality", "Cordiality and respect", GroupService},
	{"communication", "Clear communication", GroupService},
	{"responsiveness", "Responsiveness", GroupService},
	{"cleanliness", "Cleanliness and organization", GroupQuality},
	{"restrooms", "Restrooms and changing rooms", GroupQuality},
	{"floors", "Floors and carpets", GroupQuality},
	{"materials", "Materials and equipment", GroupQuality},
	{"safety-protocols", "Safety protocols", GroupSafety},
	{"schedule-adherence", "Schedule adherence", GroupPunctuality},
	{"cleaning-reinforcement", "Cleaning reinforcement", GroupPunctuality},
	{"staff-substitution", "Staff substitution", GroupPunctuality},
	{"responsibility", "Responsibility", GroupProfessionalism},
	{"personal-presentation", "Personal presentation", GroupProfessionalism},
	{"conduct", "Appropriate conduct", GroupProfessionalism},
	{"supervisor-follow-up", "Supervisor follow-up", GroupManagement},
	{"nonconformity-correction", "Correction of nonconformities", GroupManagement},
	{"contract-management", "Contract management", GroupManagement},
}

// Rating returns the label the response holds for the given category key,
// or the empty label when the category was left unrated.
func (r Response) Rating(key string) Label {
	switch key {
	case "cordiality":
		return r.Cordiality
	case "communication":
		return r.Communication
	case "responsiveness":
		return r.Responsiveness
	case "cleanliness":
		return r.Cleanliness
	case "restrooms":
		return r.Restrooms
	case "floors":
		return r.Floors
	case "materials":
		return r.Materials
	case "safety-protocols":
		return r.SafetyProtocols
	case "schedule-adherence":
		return r.ScheduleAdherence
	case "cleaning-reinforcement":
		return r.CleaningReinforcement
	case "staff-substitution":
		return r.StaffSubstitution
	case "responsibility":
		return r.Responsibility
	case "personal-presentation":
		return r.PersonalPresentation
	case "conduct":
		return r.Conduct
	case "supervisor-follow-up":
		return r.SupervisorFollowUp
	case "nonconformity-correction":
		return r.NonconformityCorrection
	case "contract-management":
		return r.ContractManagement
	}
	return ""
}

// Validate checks a response as submitted, before id and timestamp
// assignment.
func (r Response) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return errors.New("location is required")
	}
	if strings.TrimSpace(r.ServiceDate) == "" {
		return errors.New("service date is required")
	}
	if r.Overall == "" {
		return errors.New("overall rating is required")
	}
	if !r.Overall.Valid() {
		return fmt.Errorf("unknown overall rating %q", r.Overall)
	}
	for _, cat := range Categories {
		if v := r.Rating(cat.Key); v != "" && !v.Valid() {
			return fmt.Errorf("unknown rating %q for %s", v, cat.Key)
		}
	}
	return nil
}

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

// ActionItem is a remediation task, authored manually or confirmed from a
// generated proposal. Proposals share this shape with a zero ID until they
// are persisted.
type ActionItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Owner       string    `json:"owner"`
	DueDate     string    `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a ActionItem) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("title is required")
	}
	if a.Priority != PriorityHigh && a.Priority != PriorityMedium && a.Priority != PriorityLow {
		return fmt.Errorf("unknown priority %q", a.Priority)
	}
	if a.Status != "" && !ValidStatus(a.Status) {
		return fmt.Errorf("unknown status %q", a.Status)
	}
	return nil
}
