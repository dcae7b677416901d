package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/warp/schedule-engine/engine"
)

// =============================================================================
// RULE SET - Statutory constants for one jurisdiction
// =============================================================================

// RuleSet carries the statutory constants an evaluation runs under. The
// defaults follow the EU working-time directive figures (11h daily rest,
// 48h weekly ceiling); they are configuration, not per-employee data,
// and should be confirmed against the applicable jurisdiction.
type RuleSet struct {
	// MinRestMinutes is the mandatory rest between two consecutive
	// shifts of the same employee.
	MinRestMinutes int

	// MaxWeeklyMinutes is the statutory weekly worked-minutes ceiling.
	// Working exactly the ceiling is compliant; only an excess violates.
	MaxWeeklyMinutes int

	// WorkingDaysPerWeek scales custom contracts (hours-per-day) to a
	// weekly requirement.
	WorkingDaysPerWeek int

	// FullWeekHours is the weekly requirement of a full contract, from
	// which fractional contract types derive theirs.
	FullWeekHours engine.Amount
}

// DefaultRules returns the compiled-in statutory defaults.
func DefaultRules() RuleSet {
	return RuleSet{
		MinRestMinutes:     11 * 60,
		MaxWeeklyMinutes:   48 * 60,
		WorkingDaysPerWeek: 5,
		FullWeekHours:      engine.NewAmountHours(40),
	}
}

// RequiredWeeklyMinutes derives the contractual weekly requirement for an
// employee. Fractional types scale the full week; custom contracts
// multiply daily hours by the configured working days.
func (r RuleSet) RequiredWeeklyMinutes(emp Employee) int {
	if emp.Employment == EmploymentCustom {
		daily := engine.Amount{Hours: emp.CustomHoursPerDay}
		return daily.Mul(decimal.NewFromInt(int64(r.WorkingDaysPerWeek))).Minutes()
	}
	return r.FullWeekHours.Mul(emp.Employment.WeeklyFraction()).Minutes()
}
