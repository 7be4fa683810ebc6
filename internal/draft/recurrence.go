package draft

import (
	"fmt"
	"time"
)

// RecurrencePattern enum constants
const (
	PatternNone      = "none"
	PatternDaily     = "daily"
	PatternWeekly    = "weekly"
	PatternMonthly   = "monthly"
	PatternQuarterly = "quarterly"
	PatternYearly    = "yearly"
)

// RecurrenceEndType enum constants
const (
	EndNever       = "never"
	EndDate        = "date"
	EndOccurrences = "occurrences"
)

var patternUnits = map[string]string{
	PatternDaily:     "day",
	PatternWeekly:    "week",
	PatternMonthly:   "month",
	PatternQuarterly: "quarter",
	PatternYearly:    "year",
}

// RecurrenceRule is descriptive schedule metadata attached to a template.
// Nothing in this service evaluates it into actual invoice instances; it is
// stored and summarized for display only.
type RecurrenceRule struct {
	Pattern     string     `json:"pattern"`
	Interval    int        `json:"interval"`
	EndType     string     `json:"end_type"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Occurrences *int       `json:"occurrences,omitempty"`
}

// NewRecurrenceRule validates and builds a rule. A pattern of "none" forces
// interval 1 and drops any end condition, so the rule is treated as absent.
func NewRecurrenceRule(pattern string, interval int, endType string, endDate *time.Time, occurrences *int) (*RecurrenceRule, error) {
	if _, ok := patternUnits[pattern]; !ok && pattern != PatternNone {
		return nil, fmt.Errorf("unknown recurrence pattern %q", pattern)
	}

	if pattern == PatternNone {
		return &RecurrenceRule{Pattern: PatternNone, Interval: 1, EndType: EndNever}, nil
	}

	if interval < 1 {
		return nil, fmt.Errorf("recurrence interval must be a positive integer")
	}

	rule := &RecurrenceRule{Pattern: pattern, Interval: interval, EndType: endType}
	switch endType {
	case EndNever:
	case EndDate:
		if endDate == nil {
			return nil, fmt.Errorf("end date is required when the rule ends on a date")
		}
		rule.EndDate = endDate
	case EndOccurrences:
		if occurrences == nil || *occurrences < 1 {
			return nil, fmt.Errorf("occurrence count must be a positive integer")
		}
		rule.Occurrences = occurrences
	default:
		return nil, fmt.Errorf("unknown recurrence end type %q", endType)
	}

	return rule, nil
}

// IsActive reports whether the rule describes an actual repetition.
func (r *RecurrenceRule) IsActive() bool {
	return r != nil && r.Pattern != PatternNone
}

// Summary renders the human-readable schedule description shown next to the
// recurrence controls, e.g. "Every 2 weeks, until 2026-12-31".
func (r *RecurrenceRule) Summary() string {
	if !r.IsActive() {
		return "Does not repeat"
	}

	unit := patternUnits[r.Pattern]
	s := "Every " + unit
	if r.Interval > 1 {
		s = fmt.Sprintf("Every %d %ss", r.Interval, unit)
	}

	switch r.EndType {
	case EndDate:
		if r.EndDate != nil {
			s += ", until " + r.EndDate.Format("2006-01-02")
		}
	case EndOccurrences:
		if r.Occurrences != nil {
			s += fmt.Sprintf(", %d times", *r.Occurrences)
		}
	}

	return s
}
