// Package metrics computes the C10 performance report (spec §4.9) from a
// finished backtest's equity curve and trade list.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/raykavin/backtestlab/pkg/portfolio"
)

const annualizationFactor = 252
const daysPerYear = 365.25

// Metrics is the full set of performance figures reported for a run
// (spec §4.9, §6.3). Floating-point rounding only happens when a caller
// presents these values, never here.
type Metrics struct {
	FinalValue     float64
	TotalReturnPct float64
	CAGR           float64

	SharpeRatio        float64
	MaxDrawdownPct     float64
	MaxDrawdownBars    int

	TotalTrades       int
	WinningTrades     int
	LosingTrades      int
	WinRatePct        float64
	TotalProfit       float64
	TotalLoss         float64
	ProfitFactor      float64
	AverageWin        float64
	AverageLoss       float64
	AverageTrade      float64
	MaxWinningStreak  int
	MaxLosingStreak   int
	AverageTradeHours float64
}

// Compute derives Metrics from the equity curve and closed trades (spec
// §4.9).
func Compute(equityCurve []portfolio.EquityPoint, trades []portfolio.Trade, initialCapital float64) Metrics {
	m := Metrics{}
	if len(equityCurve) > 0 {
		m.FinalValue = equityCurve[len(equityCurve)-1].Value
	} else {
		m.FinalValue = initialCapital
	}

	if initialCapital != 0 {
		m.TotalReturnPct = (m.FinalValue - initialCapital) / initialCapital * 100
	}
	m.CAGR = cagr(equityCurve, initialCapital, m.FinalValue)

	m.SharpeRatio = sharpeRatio(equityCurve)
	m.MaxDrawdownPct, m.MaxDrawdownBars = maxDrawdown(equityCurve)

	computeTradeStats(&m, trades)
	return m
}

func cagr(equityCurve []portfolio.EquityPoint, initialCapital, finalValue float64) float64 {
	if len(equityCurve) < 2 || initialCapital <= 0 {
		return 0
	}
	days := equityCurve[len(equityCurve)-1].Time.Sub(equityCurve[0].Time).Hours() / 24
	if days <= 0 {
		return 0
	}
	years := days / daysPerYear
	return (math.Pow(finalValue/initialCapital, 1/years) - 1) * 100
}

func barReturns(equityCurve []portfolio.EquityPoint) []float64 {
	if len(equityCurve) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equityCurve)-1)
	for i := 1; i < len(equityCurve); i++ {
		prev := equityCurve[i-1].Value
		if prev == 0 {
			continue
		}
		returns = append(returns, (equityCurve[i].Value-prev)/prev)
	}
	return returns
}

func sharpeRatio(equityCurve []portfolio.EquityPoint) float64 {
	returns := barReturns(equityCurve)
	if len(returns) < 2 {
		return 0
	}
	mean := stat.Mean(returns, nil)
	sigma := stat.StdDev(returns, nil)
	if sigma == 0 {
		return 0
	}
	return mean / sigma * math.Sqrt(annualizationFactor)
}

func maxDrawdown(equityCurve []portfolio.EquityPoint) (float64, int) {
	if len(equityCurve) == 0 {
		return 0, 0
	}
	peak := equityCurve[0].Value
	worstPct := 0.0
	worstDuration := 0
	currentDuration := 0

	for _, p := range equityCurve[1:] {
		if p.Value > peak {
			peak = p.Value
			currentDuration = 0
			continue
		}
		currentDuration++
		if currentDuration > worstDuration {
			worstDuration = currentDuration
		}
		if peak == 0 {
			continue
		}
		pct := (p.Value - peak) / peak
		if pct < worstPct {
			worstPct = pct
		}
	}
	return worstPct * 100, worstDuration
}

func computeTradeStats(m *Metrics, trades []portfolio.Trade) {
	m.TotalTrades = len(trades)
	if len(trades) == 0 {
		return
	}

	var totalDurationHours float64
	var winStreak, loseStreak int

	for _, t := range trades {
		totalDurationHours += t.DurationHours
		if t.PnL > 0 {
			m.WinningTrades++
			m.TotalProfit += t.PnL
			winStreak++
			loseStreak = 0
		} else {
			m.LosingTrades++
			m.TotalLoss += -t.PnL
			loseStreak++
			winStreak = 0
		}
		if winStreak > m.MaxWinningStreak {
			m.MaxWinningStreak = winStreak
		}
		if loseStreak > m.MaxLosingStreak {
			m.MaxLosingStreak = loseStreak
		}
	}

	m.WinRatePct = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	m.AverageTradeHours = totalDurationHours / float64(m.TotalTrades)

	switch {
	case m.TotalLoss == 0 && m.TotalProfit > 0:
		m.ProfitFactor = math.Inf(1)
	case m.TotalLoss == 0:
		m.ProfitFactor = 0
	default:
		m.ProfitFactor = m.TotalProfit / m.TotalLoss
	}

	if m.WinningTrades > 0 {
		m.AverageWin = m.TotalProfit / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AverageLoss = m.TotalLoss / float64(m.LosingTrades)
	}

	var totalPnL float64
	for _, t := range trades {
		totalPnL += t.PnL
	}
	m.AverageTrade = totalPnL / float64(m.TotalTrades)
}
