package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/arthaplan/engine/internal/calculation"
)

// Settings is the process-level configuration: where the server listens, how
// it logs, and the engine policy knobs. Values come from an optional config
// file with ARTHAPLAN_* environment overrides.
type Settings struct {
	ListenAddr string `mapstructure:"listen_addr"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`

	Engine EngineSettings `mapstructure:"engine"`
}

// EngineSettings is the file/env representation of calculation.Options.
type EngineSettings struct {
	RealRatePolicy      string  `mapstructure:"real_rate_policy"`
	ChildInflationScope string  `mapstructure:"child_inflation_scope"`
	OnTrackShare        float64 `mapstructure:"on_track_share"`
	AttentionShare      float64 `mapstructure:"attention_share"`
	AtRiskShare         float64 `mapstructure:"at_risk_share"`
	ContingencyMonths   int     `mapstructure:"contingency_months"`
	ContingencyBase     string  `mapstructure:"contingency_base"`
	InsuranceGrowth     float64 `mapstructure:"insurance_income_growth"`
}

// Load reads settings from the given config file (empty for defaults only)
// and the environment. Environment variables use the ARTHAPLAN_ prefix with
// underscores, e.g. ARTHAPLAN_ENGINE_CONTINGENCY_MONTHS=9.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("ARTHAPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := calculation.DefaultOptions()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("engine.real_rate_policy", string(defaults.RealRate))
	v.SetDefault("engine.child_inflation_scope", string(defaults.ChildInflationScope))
	v.SetDefault("engine.on_track_share", defaults.Feasibility.OnTrackShare.InexactFloat64())
	v.SetDefault("engine.attention_share", defaults.Feasibility.AttentionShare.InexactFloat64())
	v.SetDefault("engine.at_risk_share", defaults.Feasibility.AtRiskShare.InexactFloat64())
	v.SetDefault("engine.contingency_months", defaults.ContingencyMonths)
	v.SetDefault("engine.contingency_base", string(defaults.ContingencyScope))
	v.SetDefault("engine.insurance_income_growth", defaults.InsuranceIncomeGrowth.InexactFloat64())

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

// EngineOptions converts the loaded settings into engine options. Invalid
// combinations surface through Options.Validate at engine construction.
func (s *Settings) EngineOptions() calculation.Options {
	return calculation.Options{
		RealRate:            calculation.RealRatePolicy(s.Engine.RealRatePolicy),
		ChildInflationScope: calculation.ChildInflationScope(s.Engine.ChildInflationScope),
		Feasibility: calculation.FeasibilityThresholds{
			OnTrackShare:   decimal.NewFromFloat(s.Engine.OnTrackShare),
			AttentionShare: decimal.NewFromFloat(s.Engine.AttentionShare),
			AtRiskShare:    decimal.NewFromFloat(s.Engine.AtRiskShare),
		},
		ContingencyMonths:     s.Engine.ContingencyMonths,
		ContingencyScope:      calculation.ContingencyBase(s.Engine.ContingencyBase),
		InsuranceIncomeGrowth: decimal.NewFromFloat(s.Engine.InsuranceGrowth),
	}
}
