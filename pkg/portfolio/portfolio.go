// Package portfolio implements the C8 portfolio (spec §4.7): cash and
// open positions for a single long-only backtest run, fed fills by the
// engine and marked to market once per bar.
package portfolio

import (
	"fmt"
	"math"
	"time"
)

// closeTolerance is the relative tolerance used to decide whether a SELL
// fully closes an open position (spec §4.7).
const closeTolerance = 1e-8

// FillKind is the side of a fill.
type FillKind string

const (
	FillBuy  FillKind = "BUY"
	FillSell FillKind = "SELL"
)

// Fill is an executed order, already adjusted for slippage, with its
// commission computed by the engine (spec §4.8 execution model).
type Fill struct {
	Symbol     string
	Kind       FillKind
	Quantity   float64
	Price      float64
	Commission float64
	Timestamp  time.Time
}

// Position is a single open long position in one symbol.
type Position struct {
	Symbol          string
	Quantity        float64
	EntryPrice      float64
	EntryTime       time.Time
	EntryCommission float64
}

// Trade is a closed round-trip.
type Trade struct {
	Symbol         string
	EntryTime      time.Time
	ExitTime       time.Time
	EntryPrice     float64
	ExitPrice      float64
	Quantity       float64
	Commission     float64
	PnL            float64
	PnLPct         float64
	DurationHours  float64
}

// EquityPoint is one sample of the equity curve.
type EquityPoint struct {
	Time  time.Time
	Value float64
}

// Portfolio holds cash, open positions, closed trades, and the equity
// curve for one backtest run (spec §4.7). It is owned exclusively by one
// run; the core promises no synchronization across concurrent runs
// (spec §5).
type Portfolio struct {
	Cash        float64
	Positions   map[string]*Position
	Trades      []Trade
	EquityCurve []EquityPoint
}

// New constructs a portfolio seeded with the given starting cash.
func New(initialCash float64) *Portfolio {
	return &Portfolio{
		Cash:      initialCash,
		Positions: make(map[string]*Position),
	}
}

// ApplyFill mutates cash, positions, and trades according to the
// fill-application rules of spec §4.7. markPrice is unused by the fill
// itself (only by Mark) but accepted for interface symmetry with the
// engine's per-bar call sequence.
func (p *Portfolio) ApplyFill(fill Fill, markPrice float64) error {
	switch fill.Kind {
	case FillBuy:
		return p.applyBuy(fill)
	case FillSell:
		return p.applySell(fill)
	default:
		return fmt.Errorf("portfolio: unknown fill kind %q", fill.Kind)
	}
}

func (p *Portfolio) applyBuy(fill Fill) error {
	cost := fill.Quantity*fill.Price + fill.Commission
	pos, open := p.Positions[fill.Symbol]
	if !open {
		p.Positions[fill.Symbol] = &Position{
			Symbol: fill.Symbol, Quantity: fill.Quantity,
			EntryPrice: fill.Price, EntryTime: fill.Timestamp,
			EntryCommission: fill.Commission,
		}
		p.Cash -= cost
		return nil
	}

	newQty := pos.Quantity + fill.Quantity
	pos.EntryPrice = (pos.Quantity*pos.EntryPrice + fill.Quantity*fill.Price) / newQty
	pos.Quantity = newQty
	pos.EntryCommission += fill.Commission
	p.Cash -= cost
	return nil
}

func (p *Portfolio) applySell(fill Fill) error {
	pos, open := p.Positions[fill.Symbol]
	if !open {
		// The engine must never issue a SELL without an open position
		// (spec §4.7); a stray fill is rejected with an error and leaves
		// cash and the trade list untouched.
		return fmt.Errorf("portfolio: sell fill for %s with no open position", fill.Symbol)
	}

	if !isFullClose(fill.Quantity, pos.Quantity) {
		// Partial close: reduce quantity, defer commission accounting to
		// the eventual full close (spec §4.7). The engine's own sizing
		// never issues partials; this path exists for completeness.
		pos.Quantity -= fill.Quantity
		p.Cash += fill.Quantity*fill.Price - fill.Commission
		return nil
	}

	commission := pos.EntryCommission + fill.Commission
	pnl := pos.Quantity*fill.Price - pos.Quantity*pos.EntryPrice - commission
	var pnlPct float64
	if basis := pos.Quantity * pos.EntryPrice; basis != 0 {
		pnlPct = pnl / basis * 100
	}

	p.Trades = append(p.Trades, Trade{
		Symbol: fill.Symbol, EntryTime: pos.EntryTime, ExitTime: fill.Timestamp,
		EntryPrice: pos.EntryPrice, ExitPrice: fill.Price, Quantity: pos.Quantity,
		Commission: commission, PnL: pnl, PnLPct: pnlPct,
		DurationHours: fill.Timestamp.Sub(pos.EntryTime).Hours(),
	})
	p.Cash += fill.Quantity*fill.Price - fill.Commission
	delete(p.Positions, fill.Symbol)
	return nil
}

func isFullClose(fillQty, posQty float64) bool {
	if posQty == 0 {
		return true
	}
	return math.Abs(fillQty-posQty)/math.Abs(posQty) <= closeTolerance
}

// Mark appends (timestamp, total_value) to the equity curve, where
// total_value = cash + sum of quantity * mark price over open positions
// (spec §4.7 equity invariant).
func (p *Portfolio) Mark(timestamp time.Time, prices map[string]float64) {
	total := p.Cash
	for symbol, pos := range p.Positions {
		if price, ok := prices[symbol]; ok {
			total += pos.Quantity * price
		}
	}
	p.EquityCurve = append(p.EquityCurve, EquityPoint{Time: timestamp, Value: total})
}

// HasPosition reports whether symbol currently has an open position.
func (p *Portfolio) HasPosition(symbol string) bool {
	_, ok := p.Positions[symbol]
	return ok
}

// GetPosition returns the open position for symbol, or nil.
func (p *Portfolio) GetPosition(symbol string) *Position {
	return p.Positions[symbol]
}

// TotalTrades is the number of closed round-trips.
func (p *Portfolio) TotalTrades() int {
	return len(p.Trades)
}

// WinningTrades is the number of closed trades with positive PnL.
func (p *Portfolio) WinningTrades() int {
	n := 0
	for _, t := range p.Trades {
		if t.PnL > 0 {
			n++
		}
	}
	return n
}

// LosingTrades is the number of closed trades with non-positive PnL.
func (p *Portfolio) LosingTrades() int {
	n := 0
	for _, t := range p.Trades {
		if t.PnL <= 0 {
			n++
		}
	}
	return n
}

// WinRate is the fraction of closed trades that were winners, in [0,1].
// Returns 0 if there are no closed trades.
func (p *Portfolio) WinRate() float64 {
	if len(p.Trades) == 0 {
		return 0
	}
	return float64(p.WinningTrades()) / float64(len(p.Trades))
}

// TotalReturn is (final - initial) / initial, read off the first and
// last equity curve points. Returns 0 if the curve has fewer than two
// points.
func (p *Portfolio) TotalReturn() float64 {
	if len(p.EquityCurve) < 2 {
		return 0
	}
	first := p.EquityCurve[0].Value
	last := p.EquityCurve[len(p.EquityCurve)-1].Value
	if first == 0 {
		return 0
	}
	return (last - first) / first
}
