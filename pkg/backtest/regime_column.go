package backtest

import (
	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/indicator"
	"github.com/raykavin/backtestlab/pkg/regime"
)

// computeRegimeColumn batch-computes the indicator columns the regime
// classifier needs and folds them into one Record per bar, replaying the
// (stateful, adaptive-threshold) classifier in chronological order. This
// is legal only because the classifier's equivalence law (spec §4.3)
// guarantees the same result as classifying bar-by-bar (spec §4.8 setup
// step 1).
func (e *Engine) computeRegimeColumn(series core.CandleSeries) []*regime.Record {
	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()

	cfg := e.regimeCfg
	adx := indicator.ADX(highs, lows, closes, cfg.adxPeriod)
	atr := indicator.ATR(highs, lows, closes, cfg.atrPeriod)
	rsi := indicator.RSI(closes, cfg.rsiPeriod)
	roc := indicator.ROC(closes, cfg.rocPeriod)
	macd := indicator.MACD(closes, cfg.macdFast, cfg.macdSlow, cfg.macdSignal)
	boll := indicator.Bollinger(closes, cfg.bollPeriod, cfg.bollStdDev)
	sma20 := indicator.SMA(closes, 20)
	sma50 := indicator.SMA(closes, 50)
	sma200 := indicator.SMA(closes, 200)

	classifier := regime.New(cfg.adaptiveWindow)
	records := make([]*regime.Record, len(series))

	for i := range series {
		row := regime.Row{
			Close: closes[i], ADX: adx[i],
			SMA20: sma20[i], SMA50: sma50[i], SMA200: sma200[i],
			ATR: atr[i], BollUpper: boll.Upper[i], BollLower: boll.Lower[i], BollMiddle: boll.Middle[i],
			ROC: roc[i], MACDHist: macd.Histogram[i], RSI: rsi[i],
		}
		rec := classifier.Classify(row)
		records[i] = &rec
	}
	return records
}
