package composite

import (
	"encoding/json"
	"fmt"

	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/indicator"
)

// IndicatorKind enumerates the indicators an IndicatorSignal may reference
// (spec §6.2).
type IndicatorKind string

const (
	IndicatorRSI  IndicatorKind = "RSI"
	IndicatorMACD IndicatorKind = "MACD"
	IndicatorSMA  IndicatorKind = "SMA"
	IndicatorEMA  IndicatorKind = "EMA"
	IndicatorBB   IndicatorKind = "BB"
	IndicatorATR  IndicatorKind = "ATR"
	IndicatorVWAP IndicatorKind = "VWAP"
)

// IndicatorSignal is a single indicator predicate: an indicator kind with
// its parameters and an optional component selector (for multi-output
// indicators), evaluated through a Condition (spec §4.6, §6.2).
type IndicatorSignal struct {
	Name       string
	Indicator  IndicatorKind
	Parameters map[string]float64
	Condition  Condition
	Timeframe  string
	Component  string // e.g. macd|signal|histogram, upper|middle|lower
}

// NewIndicatorSignal validates the indicator kind and constructs a signal.
func NewIndicatorSignal(name string, kind IndicatorKind, params map[string]float64, cond Condition, timeframe, component string) (*IndicatorSignal, error) {
	switch kind {
	case IndicatorRSI, IndicatorMACD, IndicatorSMA, IndicatorEMA, IndicatorBB, IndicatorATR, IndicatorVWAP:
	default:
		return nil, fmt.Errorf("composite: unknown indicator %q", kind)
	}
	if timeframe == "" {
		timeframe = "primary"
	}
	return &IndicatorSignal{
		Name: name, Indicator: kind, Parameters: params,
		Condition: cond, Timeframe: timeframe, Component: component,
	}, nil
}

func (s *IndicatorSignal) param(key string, def float64) float64 {
	if v, ok := s.Parameters[key]; ok {
		return v
	}
	return def
}

func (s *IndicatorSignal) periodParam(key string, def int) int {
	return int(s.param(key, float64(def)))
}

// Values computes the full indicator column over the series, selecting
// the requested component for multi-output indicators (spec §4.6).
func (s *IndicatorSignal) Values(series core.CandleSeries) ([]float64, error) {
	closes := series.Closes()
	switch s.Indicator {
	case IndicatorRSI:
		return indicator.RSI(closes, s.periodParam("period", 14)), nil
	case IndicatorSMA:
		return indicator.SMA(closes, s.periodParam("period", 20)), nil
	case IndicatorEMA:
		return indicator.EMA(closes, s.periodParam("period", 20)), nil
	case IndicatorATR:
		return indicator.ATR(series.Highs(), series.Lows(), closes, s.periodParam("period", 14)), nil
	case IndicatorVWAP:
		return indicator.VWAP(series.Highs(), series.Lows(), closes, series.Volumes()), nil
	case IndicatorMACD:
		r := indicator.MACD(closes, s.periodParam("fast", 12), s.periodParam("slow", 26), s.periodParam("signal", 9))
		switch s.Component {
		case "", "macd":
			return r.MACD, nil
		case "signal":
			return r.Signal, nil
		case "histogram":
			return r.Histogram, nil
		default:
			return nil, fmt.Errorf("composite: MACD component %q not found", s.Component)
		}
	case IndicatorBB:
		r := indicator.Bollinger(closes, s.periodParam("period", 20), s.param("num_std", 2.0))
		switch s.Component {
		case "", "middle":
			return r.Middle, nil
		case "upper":
			return r.Upper, nil
		case "lower":
			return r.Lower, nil
		default:
			return nil, fmt.Errorf("composite: BB component %q not found", s.Component)
		}
	default:
		return nil, fmt.Errorf("composite: unsupported indicator %q", s.Indicator)
	}
}

// EvaluateSeries evaluates the signal's condition over the entire series
// (batch mode, spec §4.4 pre-initialization hook).
func (s *IndicatorSignal) EvaluateSeries(series core.CandleSeries) ([]bool, error) {
	values, err := s.Values(series)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(values))
	for i, v := range values {
		prev := core.Undefined
		if i > 0 {
			prev = values[i-1]
		}
		out[i] = s.Condition.Evaluate(v, prev)
	}
	return out, nil
}

// signalState is the incremental (bar-by-bar) counterpart of Values: it
// wraps the matching indicator.*State and returns this signal's selected
// component on each Update, so bar-by-bar evaluation produces the same
// stream of bools as EvaluateSeries (spec §4.6 equivalence law).
type signalState struct {
	signal *IndicatorSignal

	sma  *indicator.SMAState
	ema  *indicator.EMAState
	rsi  *indicator.RSIState
	atr  *indicator.ATRState
	vwap *indicator.VWAPState
	macd *indicator.MACDState
	boll *indicator.BollingerState

	current, previous float64
	hasPrev            bool
}

func newSignalState(s *IndicatorSignal) *signalState {
	st := &signalState{signal: s, current: core.Undefined, previous: core.Undefined}
	switch s.Indicator {
	case IndicatorSMA:
		st.sma = indicator.NewSMAState(s.periodParam("period", 20))
	case IndicatorEMA:
		st.ema = indicator.NewEMAState(s.periodParam("period", 20))
	case IndicatorRSI:
		st.rsi = indicator.NewRSIState(s.periodParam("period", 14))
	case IndicatorATR:
		st.atr = indicator.NewATRState(s.periodParam("period", 14))
	case IndicatorVWAP:
		st.vwap = indicator.NewVWAPState()
	case IndicatorMACD:
		st.macd = indicator.NewMACDState(s.periodParam("fast", 12), s.periodParam("slow", 26), s.periodParam("signal", 9))
	case IndicatorBB:
		st.boll = indicator.NewBollingerState(s.periodParam("period", 20), s.param("num_std", 2.0))
	}
	return st
}

// update folds in the next candle and returns this signal's condition
// result for that bar.
func (st *signalState) update(candle core.Candle) bool {
	var value float64
	switch st.signal.Indicator {
	case IndicatorSMA:
		value = st.sma.Update(candle.Close)
	case IndicatorEMA:
		value = st.ema.Update(candle.Close)
	case IndicatorRSI:
		value = st.rsi.Update(candle.Close)
	case IndicatorATR:
		value = st.atr.Update(candle.High, candle.Low, candle.Close)
	case IndicatorVWAP:
		value = st.vwap.Update(candle.High, candle.Low, candle.Close, candle.Volume)
	case IndicatorMACD:
		macd, signal, hist := st.macd.Update(candle.Close)
		switch st.signal.Component {
		case "signal":
			value = signal
		case "histogram":
			value = hist
		default:
			value = macd
		}
	case IndicatorBB:
		mid, upper, lower, _ := st.boll.Update(candle.Close)
		switch st.signal.Component {
		case "upper":
			value = upper
		case "lower":
			value = lower
		default:
			value = mid
		}
	default:
		value = core.Undefined
	}

	previous := core.Undefined
	if st.hasPrev {
		previous = st.current
	}
	st.current = value
	st.hasPrev = true

	return st.signal.Condition.Evaluate(value, previous)
}

type indicatorSignalJSON struct {
	Name       string             `json:"name"`
	Indicator  IndicatorKind      `json:"indicator"`
	Parameters map[string]float64 `json:"parameters"`
	Condition  Condition          `json:"condition"`
	Timeframe  string             `json:"timeframe"`
	Component  *string            `json:"indicator_component,omitempty"`
}

// MarshalJSON implements the spec §6.2 wire format for IndicatorSignal.
func (s IndicatorSignal) MarshalJSON() ([]byte, error) {
	out := indicatorSignalJSON{
		Name: s.Name, Indicator: s.Indicator, Parameters: s.Parameters,
		Condition: s.Condition, Timeframe: s.Timeframe,
	}
	if s.Component != "" {
		out.Component = &s.Component
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the spec §6.2 wire format for IndicatorSignal.
func (s *IndicatorSignal) UnmarshalJSON(data []byte) error {
	var in indicatorSignalJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	timeframe := in.Timeframe
	if timeframe == "" {
		timeframe = "primary"
	}
	component := ""
	if in.Component != nil {
		component = *in.Component
	}
	built, err := NewIndicatorSignal(in.Name, in.Indicator, in.Parameters, in.Condition, timeframe, component)
	if err != nil {
		return err
	}
	*s = *built
	return nil
}
