// Package composite implements the composable strategy layer (spec §4.6,
// §6.2): a discriminated-union logic tree of indicator predicates, folded
// into entry/exit signals with an optional regime filter.
package composite

import (
	"encoding/json"
	"fmt"

	"github.com/raykavin/backtestlab/pkg/core"
)

// Operator enumerates the condition operators a leaf predicate can use
// (spec §4.6).
type Operator string

const (
	OpGreaterThan  Operator = ">"
	OpLessThan     Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpBetween      Operator = "between"
	OpOutside      Operator = "outside"
	OpCrossAbove   Operator = "cross_above"
	OpCrossBelow   Operator = "cross_below"
)

const equalTolerance = 1e-6

// Condition evaluates a single indicator value (or pair, for crossovers)
// against an operator and threshold(s).
type Condition struct {
	Operator   Operator
	Threshold  float64
	Threshold2 float64 // only meaningful for between/outside
	hasThresh2 bool
}

// NewCondition builds a Condition, validating that between/outside carry
// a second threshold (spec §4.6).
func NewCondition(op Operator, threshold float64, threshold2 *float64) (Condition, error) {
	c := Condition{Operator: op, Threshold: threshold}
	if op == OpBetween || op == OpOutside {
		if threshold2 == nil {
			return Condition{}, fmt.Errorf("composite: %s requires threshold2", op)
		}
		c.Threshold2 = *threshold2
		c.hasThresh2 = true
	}
	switch op {
	case OpGreaterThan, OpLessThan, OpGreaterEqual, OpLessEqual, OpEqual, OpNotEqual,
		OpBetween, OpOutside, OpCrossAbove, OpCrossBelow:
	default:
		return Condition{}, fmt.Errorf("composite: unknown operator %q", op)
	}
	return c, nil
}

// Evaluate applies the condition to the current value and, for
// crossovers, the previous one. An undefined current value is always
// false; an undefined previous value makes crossover predicates false
// (spec §4.6).
func (c Condition) Evaluate(current, previous float64) bool {
	if !core.IsDefined(current) {
		return false
	}
	switch c.Operator {
	case OpGreaterThan:
		return current > c.Threshold
	case OpLessThan:
		return current < c.Threshold
	case OpGreaterEqual:
		return current >= c.Threshold
	case OpLessEqual:
		return current <= c.Threshold
	case OpEqual:
		return absDiff(current, c.Threshold) < equalTolerance
	case OpNotEqual:
		return absDiff(current, c.Threshold) >= equalTolerance
	case OpBetween:
		return current >= c.Threshold && current <= c.Threshold2
	case OpOutside:
		return current < c.Threshold || current > c.Threshold2
	case OpCrossAbove:
		if !core.IsDefined(previous) {
			return false
		}
		return previous <= c.Threshold && current > c.Threshold
	case OpCrossBelow:
		if !core.IsDefined(previous) {
			return false
		}
		return previous >= c.Threshold && current < c.Threshold
	default:
		return false
	}
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

type conditionJSON struct {
	Operator   Operator `json:"operator"`
	Threshold  float64  `json:"threshold"`
	Threshold2 *float64 `json:"threshold2,omitempty"`
}

// MarshalJSON implements the spec §6.2 condition wire format.
func (c Condition) MarshalJSON() ([]byte, error) {
	out := conditionJSON{Operator: c.Operator, Threshold: c.Threshold}
	if c.hasThresh2 {
		t2 := c.Threshold2
		out.Threshold2 = &t2
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the spec §6.2 condition wire format.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var in conditionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	built, err := NewCondition(in.Operator, in.Threshold, in.Threshold2)
	if err != nil {
		return err
	}
	*c = built
	return nil
}
