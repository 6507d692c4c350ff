package config

// Config holds slab configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server   ServerCfg   `mapstructure:"server" yaml:"server"`
	Analysis AnalysisCfg `mapstructure:"analysis" yaml:"analysis"`
	Dos      DosCfg      `mapstructure:"dos" yaml:"dos"`
	Batch    BatchCfg    `mapstructure:"batch" yaml:"batch"`
}

// ServerCfg configures the HTTP API server.
type ServerCfg struct {
	Addr string `mapstructure:"addr" yaml:"addr"` // listen address, host:port
}

// AnalysisCfg holds convergence tolerances.
type AnalysisCfg struct {
	EnergyToleranceEV    float64 `mapstructure:"energy_tolerance_ev" yaml:"energy_tolerance_ev"`
	ForceToleranceEVPerA float64 `mapstructure:"force_tolerance_ev_per_a" yaml:"force_tolerance_ev_per_a"`
}

// DosCfg holds DOS profile defaults.
type DosCfg struct {
	EnergyWindowEV float64 `mapstructure:"energy_window_ev" yaml:"energy_window_ev"`
	MaxPoints      int     `mapstructure:"max_points" yaml:"max_points"`
}

// BatchCfg holds batch processing defaults.
type BatchCfg struct {
	TopN     int  `mapstructure:"top_n" yaml:"top_n"`         // size of lowest-energy ranking
	MaxRuns  int  `mapstructure:"max_runs" yaml:"max_runs"`   // discovery result cap
	FailFast bool `mapstructure:"fail_fast" yaml:"fail_fast"` // stop batches at first error
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Addr: "127.0.0.1:8080",
		},
		Analysis: AnalysisCfg{
			EnergyToleranceEV:    1e-4,
			ForceToleranceEVPerA: 0.02,
		},
		Dos: DosCfg{
			EnergyWindowEV: 5.0,
			MaxPoints:      400,
		},
		Batch: BatchCfg{
			TopN:    5,
			MaxRuns: 50,
		},
	}
}
