package config

import (
	"gitlab.com/tozd/go/errors"

	"github.com/scriptkit/scriptkit/pkg/rename"
)

// 📚 Config is the optional invocation configuration. Every section is
// optional; command-line flags always win over file values.
type Config struct {
	Rename *RenameConfig `json:"rename,omitempty" yaml:"rename,omitempty" hcl:"rename,block"`
	Fetch  *FetchConfig  `json:"fetch,omitempty" yaml:"fetch,omitempty" hcl:"fetch,block"`
	Report *ReportConfig `json:"report,omitempty" yaml:"report,omitempty" hcl:"report,block"`

	// location is the path the config was loaded from
	location string
}

// 🔧 RenameConfig holds defaults for the rename command.
type RenameConfig struct {
	Ignore       []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	NumberStart  int      `json:"number_start,omitempty" yaml:"number_start,omitempty" hcl:"number_start,optional"`
	NumberWidth  int      `json:"number_width,omitempty" yaml:"number_width,omitempty" hcl:"number_width,optional"`
	DatePosition string   `json:"date_position,omitempty" yaml:"date_position,omitempty" hcl:"date_position,optional"`
}

// 🌐 FetchConfig holds defaults for the fetch command.
type FetchConfig struct {
	GithubUser    string   `json:"github_user,omitempty" yaml:"github_user,omitempty" hcl:"github_user,optional"`
	MaxRepos      int      `json:"max_repos,omitempty" yaml:"max_repos,omitempty" hcl:"max_repos,optional"`
	WeatherCity   string   `json:"weather_city,omitempty" yaml:"weather_city,omitempty" hcl:"weather_city,optional"`
	WeatherAPIKey string   `json:"weather_api_key,omitempty" yaml:"weather_api_key,omitempty" hcl:"weather_api_key,optional"`
	Coins         []string `json:"coins,omitempty" yaml:"coins,omitempty" hcl:"coins,optional"`
}

// 📧 ReportConfig holds settings for the report command. When SMTP is not
// configured the report is written to Output instead of being mailed.
type ReportConfig struct {
	Title  string      `json:"title,omitempty" yaml:"title,omitempty" hcl:"title,optional"`
	From   string      `json:"from,omitempty" yaml:"from,omitempty" hcl:"from,optional"`
	To     []string    `json:"to,omitempty" yaml:"to,omitempty" hcl:"to,optional"`
	Output string      `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`
	SMTP   *SMTPConfig `json:"smtp,omitempty" yaml:"smtp,omitempty" hcl:"smtp,block"`
}

// 📮 SMTPConfig is the mail delivery endpoint.
type SMTPConfig struct {
	Host     string `json:"host" yaml:"host" hcl:"host"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty" hcl:"port,optional"`
	Username string `json:"username,omitempty" yaml:"username,omitempty" hcl:"username,optional"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" hcl:"password,optional"`
}

// Location returns the path the config was loaded from, when any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults.
func (cfg *Config) Validate() error {
	if cfg.Rename != nil {
		if cfg.Rename.NumberWidth < 0 {
			return errors.Errorf("rename.number_width must not be negative")
		}
		switch rename.DatePosition(cfg.Rename.DatePosition) {
		case "", rename.DatePrefix, rename.DateSuffix:
		default:
			return errors.Errorf("rename.date_position must be %q or %q", rename.DatePrefix, rename.DateSuffix)
		}
	}

	if cfg.Fetch != nil {
		if cfg.Fetch.MaxRepos < 0 {
			return errors.Errorf("fetch.max_repos must not be negative")
		}
	}

	if cfg.Report != nil && cfg.Report.SMTP != nil {
		if cfg.Report.SMTP.Host == "" {
			return errors.Errorf("report.smtp.host is required when smtp is configured")
		}
		if cfg.Report.SMTP.Port == 0 {
			cfg.Report.SMTP.Port = 587
		}
		if cfg.Report.From == "" {
			return errors.Errorf("report.from is required when smtp is configured")
		}
		if len(cfg.Report.To) == 0 {
			return errors.Errorf("report.to is required when smtp is configured")
		}
	}

	return nil
}
