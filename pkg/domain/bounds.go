package domain

import (
	"math"
	"regexp"
	"strconv"
)

// Bounds is the documented (min, max, step) triple of a slider.
type Bounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// stepTolerance absorbs float error when checking a value against the step grid.
const stepTolerance = 1e-9

// Contains reports whether v lies within [Min, Max].
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min-stepTolerance && v <= b.Max+stepTolerance
}

// OnStep reports whether v is Min plus a whole number of steps.
func (b Bounds) OnStep(v float64) bool {
	if b.Step <= 0 {
		return true
	}
	n := (v - b.Min) / b.Step
	return math.Abs(n-math.Round(n)) < stepTolerance*math.Max(1, math.Abs(n))
}

// MultipleOf returns Step when the grid counted from Min is also the grid of
// multiples of Step counted from zero, which is what JSON Schema's multipleOf
// expresses. For an off-grid Min such as "1 to 10 with steps of 2" it reports false.
func (b Bounds) MultipleOf() (float64, bool) {
	if b.Step <= 0 || !b.OnStep(0) {
		return 0, false
	}
	return b.Step, true
}

var (
	boundsPattern  = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s+to\s+(-?\d+(?:\.\d+)?)\s+with\s+steps?\s+of\s+(\d+(?:\.\d+)?)`)
	optionsPattern = regexp.MustCompile(`\(([^()]*)\)\s*$`)
	quotedPattern  = regexp.MustCompile(`"([^"]*)"`)
	unitPattern    = regexp.MustCompile(`\bin ([A-Za-z%]+)\.?\s*$`)
)

// ParseBounds extracts a range written as "<min> to <max> with steps of <step>".
func ParseBounds(description string) (Bounds, bool) {
	m := boundsPattern.FindStringSubmatch(description)
	if m == nil {
		return Bounds{}, false
	}
	var vals [3]float64
	for i := range vals {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Bounds{}, false
		}
		vals[i] = f
	}
	b := Bounds{Min: vals[0], Max: vals[1], Step: vals[2]}
	if b.Min > b.Max {
		return Bounds{}, false
	}
	return b, true
}

// ParseOptions extracts the quoted choices from a trailing parenthesis,
// e.g. `"Sub polarity" ("-" or "+")` yields ["-", "+"].
func ParseOptions(description string) []string {
	m := optionsPattern.FindStringSubmatch(description)
	if m == nil {
		return nil
	}
	quoted := quotedPattern.FindAllStringSubmatch(m[1], -1)
	if len(quoted) == 0 {
		return nil
	}
	opts := make([]string, len(quoted))
	for i, q := range quoted {
		opts[i] = q[1]
	}
	return opts
}

// ParseUnit extracts the unit from an action description ending in "in <unit>.".
func ParseUnit(description string) string {
	m := unitPattern.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	return m[1]
}
