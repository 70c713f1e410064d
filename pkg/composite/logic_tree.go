package composite

import (
	"encoding/json"
	"fmt"

	"github.com/raykavin/backtestlab/pkg/core"
)

// LogicOperator combines a branch node's children (spec §4.6).
type LogicOperator string

const (
	LogicAND LogicOperator = "AND"
	LogicOR  LogicOperator = "OR"
)

// LogicTree is either a leaf (an indicator predicate) or a branch (an
// operator over child trees). AND of no children is true; OR of no
// children is false; a single-child branch behaves exactly like that
// child (spec §4.6).
type LogicTree struct {
	Signal   *IndicatorSignal
	Operator LogicOperator
	Children []*LogicTree

	state *signalState // lazily built incremental leaf state
}

// Leaf builds a leaf node wrapping a single indicator signal.
func Leaf(signal *IndicatorSignal) *LogicTree {
	return &LogicTree{Signal: signal}
}

// Branch builds a branch node combining children with AND or OR.
func Branch(op LogicOperator, children ...*LogicTree) *LogicTree {
	return &LogicTree{Operator: op, Children: children}
}

// AND is a convenience constructor for a flat AND of signals (spec §4.6
// example usage).
func AND(signals ...*IndicatorSignal) *LogicTree {
	if len(signals) == 1 {
		return Leaf(signals[0])
	}
	children := make([]*LogicTree, len(signals))
	for i, s := range signals {
		children[i] = Leaf(s)
	}
	return Branch(LogicAND, children...)
}

// OR is a convenience constructor for a flat OR of signals.
func OR(signals ...*IndicatorSignal) *LogicTree {
	if len(signals) == 1 {
		return Leaf(signals[0])
	}
	children := make([]*LogicTree, len(signals))
	for i, s := range signals {
		children[i] = Leaf(s)
	}
	return Branch(LogicOR, children...)
}

func (t *LogicTree) isLeaf() bool {
	return t.Signal != nil
}

// EvaluateSeries evaluates the tree over the full series (batch mode,
// spec §4.4 pre-initialization hook).
func (t *LogicTree) EvaluateSeries(series core.CandleSeries) ([]bool, error) {
	if t.isLeaf() {
		return t.Signal.EvaluateSeries(series)
	}
	if len(t.Children) == 0 {
		out := make([]bool, len(series))
		for i := range out {
			out[i] = t.Operator == LogicAND
		}
		return out, nil
	}
	combined, err := t.Children[0].EvaluateSeries(series)
	if err != nil {
		return nil, err
	}
	for _, child := range t.Children[1:] {
		next, err := child.EvaluateSeries(series)
		if err != nil {
			return nil, err
		}
		for i := range combined {
			if t.Operator == LogicAND {
				combined[i] = combined[i] && next[i]
			} else {
				combined[i] = combined[i] || next[i]
			}
		}
	}
	return combined, nil
}

// Evaluate folds the next candle in and reports whether the tree fires
// for this bar (bar-by-bar mode). It must be called once per bar, in
// order, for the incremental leaf state to stay in sync with
// EvaluateSeries (spec §4.6 equivalence law).
func (t *LogicTree) Evaluate(candle core.Candle) bool {
	if t.isLeaf() {
		if t.state == nil {
			t.state = newSignalState(t.Signal)
		}
		return t.state.update(candle)
	}
	if len(t.Children) == 0 {
		return t.Operator == LogicAND
	}
	result := t.Children[0].Evaluate(candle)
	for _, child := range t.Children[1:] {
		next := child.Evaluate(candle)
		if t.Operator == LogicAND {
			result = result && next
		} else {
			result = result || next
		}
	}
	return result
}

type logicTreeJSON struct {
	Type     string           `json:"type"`
	Signal   *IndicatorSignal `json:"signal,omitempty"`
	Operator LogicOperator    `json:"operator,omitempty"`
	Children []*LogicTree     `json:"children,omitempty"`
}

// MarshalJSON implements the spec §6.2 discriminated union for LogicTree.
func (t LogicTree) MarshalJSON() ([]byte, error) {
	if t.isLeaf() {
		return json.Marshal(logicTreeJSON{Type: "leaf", Signal: t.Signal})
	}
	return json.Marshal(logicTreeJSON{Type: "branch", Operator: t.Operator, Children: t.Children})
}

// UnmarshalJSON implements the spec §6.2 discriminated union for LogicTree.
func (t *LogicTree) UnmarshalJSON(data []byte) error {
	var in logicTreeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Type {
	case "leaf":
		if in.Signal == nil {
			return fmt.Errorf("composite: leaf node missing signal")
		}
		*t = LogicTree{Signal: in.Signal}
	case "branch":
		if in.Operator != LogicAND && in.Operator != LogicOR {
			return fmt.Errorf("composite: unknown logic operator %q", in.Operator)
		}
		*t = LogicTree{Operator: in.Operator, Children: in.Children}
	default:
		return fmt.Errorf("composite: unknown logic tree node type %q", in.Type)
	}
	return nil
}
