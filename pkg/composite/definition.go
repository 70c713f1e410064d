package composite

import (
	"encoding/json"
	"fmt"
)

// StrategyType discriminates the two shapes a persisted strategy
// definition can take (spec §6.2).
type StrategyType string

const (
	StrategyTypeBuiltin   StrategyType = "builtin"
	StrategyTypeComposite StrategyType = "composite"
)

// Definition is the persisted, structured form of a strategy (spec
// §6.2): either a reference to one of the built-in strategies by name
// plus its parameters, or a fully composite strategy with entry/exit
// logic trees and optional regime filters.
type Definition struct {
	Name            string
	Description     string
	StrategyType    StrategyType
	BuiltinClass    string
	Parameters      map[string]float64
	EntryLogic      *LogicTree
	ExitLogic       *LogicTree
	RegimeFilter    []string
	SubRegimeFilter map[string][]string
}

type definitionJSON struct {
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	StrategyType    StrategyType        `json:"strategy_type"`
	BuiltinClass    string              `json:"builtin_class,omitempty"`
	Parameters      map[string]float64  `json:"parameters,omitempty"`
	EntryLogic      *LogicTree          `json:"entry_logic,omitempty"`
	ExitLogic       *LogicTree          `json:"exit_logic,omitempty"`
	RegimeFilter    []string            `json:"regime_filter,omitempty"`
	SubRegimeFilter map[string][]string `json:"sub_regime_filter,omitempty"`
}

// MarshalJSON implements the spec §6.2 strategy definition wire format.
func (d Definition) MarshalJSON() ([]byte, error) {
	return json.Marshal(definitionJSON{
		Name: d.Name, Description: d.Description, StrategyType: d.StrategyType,
		BuiltinClass: d.BuiltinClass, Parameters: d.Parameters,
		EntryLogic: d.EntryLogic, ExitLogic: d.ExitLogic,
		RegimeFilter: d.RegimeFilter, SubRegimeFilter: d.SubRegimeFilter,
	})
}

// UnmarshalJSON implements the spec §6.2 strategy definition wire format.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var in definitionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.StrategyType {
	case StrategyTypeBuiltin, StrategyTypeComposite:
	default:
		return fmt.Errorf("composite: unknown strategy_type %q", in.StrategyType)
	}
	*d = Definition{
		Name: in.Name, Description: in.Description, StrategyType: in.StrategyType,
		BuiltinClass: in.BuiltinClass, Parameters: in.Parameters,
		EntryLogic: in.EntryLogic, ExitLogic: in.ExitLogic,
		RegimeFilter: in.RegimeFilter, SubRegimeFilter: in.SubRegimeFilter,
	}
	return nil
}

// ToDefinition converts a built CompositeStrategy back to its persisted
// form (spec §6.2, round-trip via from_dict(to_dict(x)) == x).
func (c *CompositeStrategy) ToDefinition() Definition {
	return Definition{
		Name: c.Name, Description: c.Description, StrategyType: StrategyTypeComposite,
		EntryLogic: c.EntryLogic, ExitLogic: c.ExitLogic,
		RegimeFilter: c.RegimeFilter, SubRegimeFilter: c.SubRegimeFilter,
	}
}

// FromDefinition builds a CompositeStrategy from its persisted form.
// It only accepts composite definitions; builtin definitions are built
// by the pkg/strategy package's own constructors from d.Parameters.
func FromDefinition(d Definition) (*CompositeStrategy, error) {
	if d.StrategyType != StrategyTypeComposite {
		return nil, fmt.Errorf("composite: FromDefinition requires strategy_type=composite, got %q", d.StrategyType)
	}
	return NewCompositeStrategy(d.Name, d.Description, d.EntryLogic, d.ExitLogic, d.RegimeFilter, d.SubRegimeFilter)
}
