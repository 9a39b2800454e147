package models

// SupportedIntervals lists the candle intervals the market-data provider
// accepts.
var SupportedIntervals = []string{
	"1min", "5min", "15min", "30min", "45min", "1h", "2h", "4h", "8h", "1day", "1week", "1month",
}

// IsSupportedInterval reports whether the given interval is recognized.
func IsSupportedInterval(interval string) bool {
	for _, v := range SupportedIntervals {
		if v == interval {
			return true
		}
	}
	return false
}
