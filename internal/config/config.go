package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Model  ModelConfig  `yaml:"model" mapstructure:"model"`
	Scorer ScorerConfig `yaml:"scorer" mapstructure:"scorer"`
	Report ReportConfig `yaml:"report" mapstructure:"report"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ModelConfig configures the projection engine and its input tables.
type ModelConfig struct {
	BaseYear       int     `yaml:"base_year" mapstructure:"base_year"`
	Years          []int   `yaml:"years" mapstructure:"years"`
	BasePopulation float64 `yaml:"base_population" mapstructure:"base_population"` // millions
	BaseGDP        float64 `yaml:"base_gdp" mapstructure:"base_gdp"`               // billion USD
	ScenariosFile  string  `yaml:"scenarios_file" mapstructure:"scenarios_file"`
	RegionsFile    string  `yaml:"regions_file" mapstructure:"regions_file"`
	RegionsSheet   string  `yaml:"regions_sheet" mapstructure:"regions_sheet"`
	BoundariesFile string  `yaml:"boundaries_file" mapstructure:"boundaries_file"`
	BoundaryField  string  `yaml:"boundary_code_field" mapstructure:"boundary_code_field"`
}

// ScorerConfig holds the risk and opportunity rubric weights and scales.
type ScorerConfig struct {
	// Risk dimension weights (sum = 100).
	ClimateWeight        float64 `yaml:"climate_weight" mapstructure:"climate_weight"`
	EconomicRiskWeight   float64 `yaml:"economic_risk_weight" mapstructure:"economic_risk_weight"`
	SocialWeight         float64 `yaml:"social_weight" mapstructure:"social_weight"`
	InfrastructureWeight float64 `yaml:"infrastructure_weight" mapstructure:"infrastructure_weight"`

	// Opportunity dimension weights (sum = 100).
	EconomicOpportunityWeight float64 `yaml:"economic_opportunity_weight" mapstructure:"economic_opportunity_weight"`
	InnovationWeight          float64 `yaml:"innovation_weight" mapstructure:"innovation_weight"`
	SustainabilityWeight      float64 `yaml:"sustainability_weight" mapstructure:"sustainability_weight"`
	QualityOfLifeWeight       float64 `yaml:"quality_of_life_weight" mapstructure:"quality_of_life_weight"`

	RiskScale          float64 `yaml:"risk_scale" mapstructure:"risk_scale"`
	OpportunityScale   float64 `yaml:"opportunity_scale" mapstructure:"opportunity_scale"`
	HighlightThreshold float64 `yaml:"highlight_threshold" mapstructure:"highlight_threshold"`
	TopN               int     `yaml:"top_n" mapstructure:"top_n"`
}

// ReportConfig configures deliverable generation.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Title     string `yaml:"title" mapstructure:"title"`
	Charts    bool   `yaml:"charts" mapstructure:"charts"`
	Workbook  bool   `yaml:"workbook" mapstructure:"workbook"`
	Locale    string `yaml:"locale" mapstructure:"locale"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int    `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int    `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the read-only API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// FetchConfig configures remote data downloads.
type FetchConfig struct {
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries     int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("model.base_year", 2024)
	v.SetDefault("model.years", []int{2025, 2030, 2040, 2050})
	v.SetDefault("model.base_population", 36.4)
	v.SetDefault("model.base_gdp", 1108.0)
	v.SetDefault("model.regions_sheet", "regions")
	v.SetDefault("model.boundary_code_field", "ISO")
	v.SetDefault("scorer.climate_weight", 25)
	v.SetDefault("scorer.economic_risk_weight", 25)
	v.SetDefault("scorer.social_weight", 25)
	v.SetDefault("scorer.infrastructure_weight", 25)
	v.SetDefault("scorer.economic_opportunity_weight", 25)
	v.SetDefault("scorer.innovation_weight", 25)
	v.SetDefault("scorer.sustainability_weight", 25)
	v.SetDefault("scorer.quality_of_life_weight", 25)
	v.SetDefault("scorer.risk_scale", 2.5)
	v.SetDefault("scorer.opportunity_scale", 3.33)
	v.SetDefault("scorer.highlight_threshold", 7.0)
	v.SetDefault("scorer.top_n", 10)
	v.SetDefault("report.output_dir", "output/ws5")
	v.SetDefault("report.title", "WS5 Scenario Modeling Report")
	v.SetDefault("report.charts", true)
	v.SetDefault("report.workbook", true)
	v.SetDefault("report.locale", "en")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "nss.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("fetch.user_agent", "nss-cli/1.0")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.requests_per_sec", 2.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a command mode depends on. Modes: "model",
// "report", "store", "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "model":
		errs = append(errs, c.validateModel()...)
	case "report":
		errs = append(errs, c.validateModel()...)
		if c.Report.OutputDir == "" {
			errs = append(errs, "report.output_dir is required")
		}
	case "store":
		errs = append(errs, c.validateStore()...)
	case "serve":
		errs = append(errs, c.validateModel()...)
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateModel() []string {
	var errs []string
	if c.Model.BaseYear <= 0 {
		errs = append(errs, "model.base_year is required")
	}
	if len(c.Model.Years) == 0 {
		errs = append(errs, "model.years is required")
	}
	for _, y := range c.Model.Years {
		if y < c.Model.BaseYear {
			errs = append(errs, fmt.Sprintf("model.years entry %d precedes base_year %d", y, c.Model.BaseYear))
		}
	}
	if c.Model.BasePopulation <= 0 {
		errs = append(errs, "model.base_population must be > 0")
	}
	if c.Model.BaseGDP <= 0 {
		errs = append(errs, "model.base_gdp must be > 0")
	}
	return errs
}

func (c *Config) validateStore() []string {
	var errs []string
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
	}
	if c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required")
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
