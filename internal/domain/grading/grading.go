package grading

import "github.com/shopspring/decimal"

// gradeBand maps a minimum percentage to a letter grade.
type gradeBand struct {
	Threshold float64
	Grade     string
}

// scale is evaluated highest-first; the first band whose threshold the
// percentage meets wins.
var scale = []gradeBand{
	{90, "A+"},
	{80, "A"},
	{70, "B+"},
	{60, "B"},
	{50, "C"},
	{40, "D"},
}

// ComputeGrade converts a percentage into a letter grade.
func ComputeGrade(percentage float64) string {
	for _, band := range scale {
		if percentage >= band.Threshold {
			return band.Grade
		}
	}
	return "F"
}

// GradeFor derives the grade for a single mark entry. It returns nil when
// the student was absent, no score was recorded, or the subject's maximum
// is unknown or zero — an incomplete record, not an error.
func GradeFor(obtained *decimal.Decimal, maxMarks *decimal.Decimal, isAbsent bool) *string {
	if isAbsent || obtained == nil || maxMarks == nil || maxMarks.IsZero() {
		return nil
	}
	pct, _ := obtained.Div(*maxMarks).Mul(decimal.NewFromInt(100)).Float64()
	grade := ComputeGrade(pct)
	return &grade
}

// Percentage computes round(obtained/max*100, 2), or zero when max is zero.
func Percentage(totalObtained, totalMax decimal.Decimal) decimal.Decimal {
	if totalMax.IsZero() {
		return decimal.Zero
	}
	return totalObtained.Div(totalMax).Mul(decimal.NewFromInt(100)).Round(2)
}
