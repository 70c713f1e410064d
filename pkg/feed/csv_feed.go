// Package feed loads candle series from CSV files. It exists only to
// exercise pkg/core and pkg/backtest end to end from cmd/backtestlab and
// from tests; the core backtest contract is pkg/core.CandleSeries
// itself, not any particular loader.
package feed

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/raykavin/backtestlab/pkg/core"
)

var defaultHeaderMap = map[string]int{
	"time": 0, "open": 1, "high": 2, "low": 3, "close": 4, "volume": 5,
}

// LoadCSV reads one symbol/timeframe's candles from a CSV file. Each row
// is either "unix_seconds,open,high,low,close,volume" (no header) or any
// column order named by a header row containing those six names.
func LoadCSV(path, symbol string, timeframe core.Timeframe) (core.CandleSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return core.CandleSeries{}, nil
	}

	headerMap, rows := parseHeader(rows)

	series := make(core.CandleSeries, 0, len(rows))
	for _, row := range rows {
		candle, err := parseCandleRow(row, headerMap, symbol, timeframe)
		if err != nil {
			return nil, err
		}
		series = append(series, candle)
	}
	return series, nil
}

// parseHeader reports whether rows[0] is a header line (its first field
// fails to parse as a timestamp) and returns the column map plus the
// remaining data rows.
func parseHeader(rows [][]string) (map[string]int, [][]string) {
	if _, err := strconv.ParseInt(rows[0][0], 10, 64); err == nil {
		return defaultHeaderMap, rows
	}

	headerMap := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		headerMap[name] = i
	}
	return headerMap, rows[1:]
}

func parseCandleRow(row []string, headerMap map[string]int, symbol string, timeframe core.Timeframe) (core.Candle, error) {
	unixSeconds, err := strconv.ParseInt(row[headerMap["time"]], 10, 64)
	if err != nil {
		return core.Candle{}, err
	}

	candle := core.Candle{
		Symbol:    symbol,
		Timeframe: timeframe,
		OpenTime:  time.Unix(unixSeconds, 0).UTC(),
	}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"open", &candle.Open}, {"high", &candle.High},
		{"low", &candle.Low}, {"close", &candle.Close}, {"volume", &candle.Volume},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(row[headerMap[f.name]], 64)
		if err != nil {
			return core.Candle{}, err
		}
		*f.dst = v
	}

	return candle, nil
}
