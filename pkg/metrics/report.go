package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"

	"github.com/raykavin/backtestlab/pkg/portfolio"
)

// Report renders a Metrics value as a human-readable summary table plus a
// histogram of per-trade returns, in the teacher's console-report style.
type Report struct {
	Metrics Metrics
	Trades  []portfolio.Trade
}

// Fprint writes the summary table and trade-return histogram to w.
func (r Report) Fprint(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	m := r.Metrics
	table.AppendBulk([][]string{
		{"Final Value", fmt.Sprintf("%.2f", m.FinalValue)},
		{"Total Return %", fmt.Sprintf("%.2f", m.TotalReturnPct)},
		{"CAGR %", fmt.Sprintf("%.2f", m.CAGR)},
		{"Sharpe", fmt.Sprintf("%.2f", m.SharpeRatio)},
		{"Max Drawdown %", fmt.Sprintf("%.2f", m.MaxDrawdownPct)},
		{"Max Drawdown (bars)", strconv.Itoa(m.MaxDrawdownBars)},
		{"Trades", strconv.Itoa(m.TotalTrades)},
		{"Win Rate %", fmt.Sprintf("%.2f", m.WinRatePct)},
		{"Profit Factor", fmt.Sprintf("%.2f", m.ProfitFactor)},
		{"Avg Win", fmt.Sprintf("%.4f", m.AverageWin)},
		{"Avg Loss", fmt.Sprintf("%.4f", m.AverageLoss)},
		{"Avg Trade", fmt.Sprintf("%.4f", m.AverageTrade)},
		{"Max Winning Streak", strconv.Itoa(m.MaxWinningStreak)},
		{"Max Losing Streak", strconv.Itoa(m.MaxLosingStreak)},
		{"Avg Trade Duration (h)", fmt.Sprintf("%.2f", m.AverageTradeHours)},
	})
	table.Render()

	if len(r.Trades) == 0 {
		return
	}
	returnsPercent := make([]float64, len(r.Trades))
	for i, t := range r.Trades {
		returnsPercent[i] = t.PnLPct
	}
	hist := histogram.Hist(15, returnsPercent)
	histogram.Fprint(w, hist, histogram.Linear(10))
}
