/*
Package rules provides JSON to Go rule-set conversion.

PURPOSE:
  Converts JSON rule definitions into schedule.RuleSet values. Statutory
  constants (minimum rest, weekly ceiling) are jurisdiction assertions,
  not engine facts, so deployments configure them without code changes
  and the compiled-in defaults only cover the common case.

JSON SCHEMA:
  {
    "jurisdiction": "eu-working-time",
    "min_rest_hours": 11,
    "max_weekly_hours": 48,
    "working_days_per_week": 5,
    "full_week_hours": 40
  }

USAGE:
  ruleSet, err := rules.Load("./rules.json")
  eng := schedule.New(ruleSet)

SEE ALSO:
  - schedule/rules.go: RuleSet consumed by the validators
*/
package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/warp/schedule-engine/engine"
	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RulesJSON is the JSON representation of a rule set. Zero fields fall
// back to the compiled-in defaults.
type RulesJSON struct {
	Jurisdiction       string  `json:"jurisdiction,omitempty"`
	MinRestHours       float64 `json:"min_rest_hours,omitempty"`
	MaxWeeklyHours     float64 `json:"max_weekly_hours,omitempty"`
	WorkingDaysPerWeek int     `json:"working_days_per_week,omitempty"`
	FullWeekHours      float64 `json:"full_week_hours,omitempty"`
}

// Parse converts a JSON document into a RuleSet, applying defaults for
// absent fields and rejecting nonsensical values.
func Parse(data []byte) (schedule.RuleSet, error) {
	var doc RulesJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return schedule.RuleSet{}, fmt.Errorf("parse rules: %w", err)
	}
	return FromJSON(doc)
}

// FromJSON builds a RuleSet from the decoded document.
func FromJSON(doc RulesJSON) (schedule.RuleSet, error) {
	rs := schedule.DefaultRules()

	if doc.MinRestHours != 0 {
		if doc.MinRestHours < 0 || doc.MinRestHours > 24 {
			return schedule.RuleSet{}, fmt.Errorf("min_rest_hours %v out of range", doc.MinRestHours)
		}
		rs.MinRestMinutes = engine.NewAmountHours(doc.MinRestHours).Minutes()
	}
	if doc.MaxWeeklyHours != 0 {
		if doc.MaxWeeklyHours < 0 || doc.MaxWeeklyHours > 168 {
			return schedule.RuleSet{}, fmt.Errorf("max_weekly_hours %v out of range", doc.MaxWeeklyHours)
		}
		rs.MaxWeeklyMinutes = engine.NewAmountHours(doc.MaxWeeklyHours).Minutes()
	}
	if doc.WorkingDaysPerWeek != 0 {
		if doc.WorkingDaysPerWeek < 1 || doc.WorkingDaysPerWeek > 7 {
			return schedule.RuleSet{}, fmt.Errorf("working_days_per_week %d out of range", doc.WorkingDaysPerWeek)
		}
		rs.WorkingDaysPerWeek = doc.WorkingDaysPerWeek
	}
	if doc.FullWeekHours != 0 {
		if doc.FullWeekHours < 0 || doc.FullWeekHours > 168 {
			return schedule.RuleSet{}, fmt.Errorf("full_week_hours %v out of range", doc.FullWeekHours)
		}
		rs.FullWeekHours = engine.NewAmountHours(doc.FullWeekHours)
	}
	return rs, nil
}

// Load reads a rule-set file. A missing path returns the defaults, so a
// deployment without a rules file still runs under the common case.
func Load(path string) (schedule.RuleSet, error) {
	if path == "" {
		return schedule.DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return schedule.DefaultRules(), nil
		}
		return schedule.RuleSet{}, fmt.Errorf("load rules: %w", err)
	}
	return Parse(data)
}
