package config

import "time"

// Default configuration values.
const (
	defaultServiceName      = "complaint-classifier"
	defaultServiceVersion   = "1.0.0"
	defaultServicePort      = 8070
	defaultDBHost           = "localhost"
	defaultDBPort           = 5432
	defaultDBUser           = "postgres"
	defaultDBName           = "complaints"
	defaultDBSSLMode        = "disable"
	defaultDBMaxConns       = 25
	defaultDBMaxIdleConns   = 5
	defaultModelServiceURL  = "http://category-ml:8076"
	defaultModelTimeoutSec  = 5
	defaultDuplicateWindow  = 60 * time.Second
	defaultIntakeRPS        = 100
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultStatsDefaultDays = 30
)

// Config holds all configuration for the complaint classification service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Database  DatabaseConfig  `yaml:"database"`
	Model     ModelConfig     `yaml:"model"`
	Intake    IntakeConfig    `yaml:"intake"`
	Reporting ReportingConfig `yaml:"reporting"`
	Logging   LoggingConfig   `yaml:"logging"`
	Auth      AuthConfig      `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"COMPLAINTS_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"       yaml:"debug"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// ModelConfig holds model sidecar settings.
type ModelConfig struct {
	Enabled    bool          `env:"MODEL_ENABLED"     yaml:"enabled"`
	ServiceURL string        `env:"MODEL_SERVICE_URL" yaml:"service_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

// IntakeConfig holds submission path settings.
type IntakeConfig struct {
	DuplicateWindow time.Duration `env:"INTAKE_DUPLICATE_WINDOW" yaml:"duplicate_window"`
	RateLimitRPS    int           `env:"INTAKE_RATE_LIMIT_RPS"   yaml:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
}

// ReportingConfig holds stats and reporting settings.
type ReportingConfig struct {
	DefaultDays int `yaml:"default_days"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
	Output string `yaml:"output"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path, applies defaults,
// then re-applies environment overrides (env always wins).
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	setDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setModelDefaults(&cfg.Model)
	setIntakeDefaults(&cfg.Intake)
	setReportingDefaults(&cfg.Reporting)
	setLoggingDefaults(&cfg.Logging)
	// Auth defaults are handled by env tags - no explicit defaults needed
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setModelDefaults(m *ModelConfig) {
	if m.ServiceURL == "" {
		m.ServiceURL = defaultModelServiceURL
	}
	if m.Timeout == 0 {
		m.Timeout = defaultModelTimeoutSec * time.Second
	}
}

func setIntakeDefaults(i *IntakeConfig) {
	if i.DuplicateWindow == 0 {
		i.DuplicateWindow = defaultDuplicateWindow
	}
	if i.RateLimitRPS == 0 {
		i.RateLimitRPS = defaultIntakeRPS
	}
	if i.RateLimitBurst == 0 {
		i.RateLimitBurst = i.RateLimitRPS
	}
}

func setReportingDefaults(r *ReportingConfig) {
	if r.DefaultDays == 0 {
		r.DefaultDays = defaultStatsDefaultDays
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
