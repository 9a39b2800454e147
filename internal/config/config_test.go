package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Symbol:             "EUR/USD",
		FastTimeframe:      "5min",
		SlowTimeframes:     []string{"4h", "1h", "30min", "15min"},
		CandleCount:        120,
		DailyDrawdownPct:   0.05,
		OverallDrawdownPct: 0.10,
		MaxTradesPerDay:    3,
		RiskPercent:        0.01,
		MinVolumeUnit:      0.01,
		VolumePrecision:    2,
		ResultMultiplier:   1.0,
		TickInterval:       time.Minute,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty symbol", func(c *Config) { c.Symbol = "" }, true},
		{"unknown fast timeframe", func(c *Config) { c.FastTimeframe = "3min" }, true},
		{"no slow timeframes", func(c *Config) { c.SlowTimeframes = nil }, true},
		{"unknown slow timeframe", func(c *Config) { c.SlowTimeframes = []string{"4h", "7min"} }, true},
		{"daily drawdown at zero", func(c *Config) { c.DailyDrawdownPct = 0 }, true},
		{"overall drawdown at one", func(c *Config) { c.OverallDrawdownPct = 1 }, true},
		{"zero max trades", func(c *Config) { c.MaxTradesPerDay = 0 }, true},
		{"risk percent negative", func(c *Config) { c.RiskPercent = -0.01 }, true},
		{"zero min volume unit", func(c *Config) { c.MinVolumeUnit = 0 }, true},
		{"zero result multiplier", func(c *Config) { c.ResultMultiplier = 0 }, true},
		{"sub-second tick interval", func(c *Config) { c.TickInterval = 100 * time.Millisecond }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" 4h, 1h ,30min,,15min ")
	want := []string{"4h", "1h", "30min", "15min"}
	if len(got) != len(want) {
		t.Fatalf("splitList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
