package core

import (
	"fmt"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// Timeframe is a discrete candle interval (spec §3).
type Timeframe string

// Supported timeframes. The core never normalizes or resamples between
// them; a series is expected to already be in one timeframe.
const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
)

var validTimeframes = map[Timeframe]bool{
	Timeframe1m: true, Timeframe5m: true, Timeframe15m: true,
	Timeframe1h: true, Timeframe4h: true, Timeframe1d: true,
}

// Valid reports whether the timeframe is one of the supported constants.
func (t Timeframe) Valid() bool {
	return validTimeframes[t]
}

// Duration converts the timeframe label into a time.Duration, using
// str2duration to parse the "1d"/"4h" style shorthand.
func (t Timeframe) Duration() (time.Duration, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("unknown timeframe: %s", t)
	}
	return str2duration.ParseDuration(string(t))
}
