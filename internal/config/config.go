package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultWebhookTimeout = 10

type Config struct {
	Database struct {
		Driver   string `json:"driver"` // "postgres" or "sqlite"
		Host     string `json:"host"`
		Port     int    `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Database string `json:"database"`
		Path     string `json:"path"` // sqlite only
	} `json:"database"`
	Server struct {
		Name        string `json:"name"`
		MetricsAddr string `json:"metrics_addr"` // empty disables the /metrics listener
	} `json:"server"`
	Webhooks Webhooks `json:"webhooks"`
	Misc     Misc     `json:"misc"`
}

type Webhooks struct {
	Enabled        bool   `json:"webhooks_enabled"`
	URL            string `json:"webhook_url"`
	AdvertURL      string `json:"advert_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`

	Modcall ModcallWebhook  `json:"modcall_webhook"`
	Advert  WebhookSettings `json:"advert_webhook"`
	Kick    WebhookSettings `json:"kick_webhook"`
	Ban     WebhookSettings `json:"ban_webhook"`
	Unban   WebhookSettings `json:"unban_webhook"`
	Warn    WebhookSettings `json:"warn_webhook"`
}

type WebhookSettings struct {
	Enabled   bool   `json:"enabled"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type ModcallWebhook struct {
	WebhookSettings
	PingOnNoMods bool   `json:"ping_on_no_mods"`
	ModRoleID    string `json:"mod_role_id"`
}

type Misc struct {
	AdvertTitles []string   `json:"advert_titles"`
	AdvertRoles  []RolePing `json:"advert_roles"`
	GimpLines    []string   `json:"gimp_lines"`
}

// Keywords in a case advert that resolve to one role mention.
type RolePing struct {
	Keywords []string `json:"keywords"`
	Mention  string   `json:"mention"`
}

// Secrets which may be supplied through the environment or a .env file instead of the config file.
type envOverrides struct {
	DatabasePassword string `env:"COURT_DATABASE_PASSWORD"`
	WebhookURL       string `env:"COURT_WEBHOOK_URL"`
	AdvertURL        string `env:"COURT_ADVERT_URL"`
}

// The role table used when the config does not define advert_roles.
func DefaultAdvertRoles() []RolePing {
	return []RolePing{
		{Keywords: []string{"def", "defense"}, Mention: "<@&1080312713181409400>"},
		{Keywords: []string{"pro", "prosecution"}, Mention: "<@&1080312912603779122>"},
		{Keywords: []string{"wit", "witness", "det", "detective"}, Mention: "<@&1080455427587842078>"},
		{Keywords: []string{"jud", "judge"}, Mention: "<@&1080455480985522226>"},
		{Keywords: []string{"steno", "stenographer"}, Mention: "<@&1080455505455087676>"},
	}
}

func DefaultGimpLines() []string {
	return []string{
		"ERP IS BAN",
		"I'm an idiot",
		"I have a crush on the judge",
		"Objection! ...wait, what was I saying?",
		"I forgot my evidence at home",
	}
}

// Instances new config from json file, applies environment overrides and defaults.
//
// Does not check for any missing keys, use CheckConfig() for that.
func LoadConfig(cfgPath string) (*Config, error) {
	f, err := os.Open(cfgPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config

	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	// A missing .env file is fine, the system environment is used then.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	if o.DatabasePassword != "" {
		c.Database.Password = o.DatabasePassword
	}
	if o.WebhookURL != "" {
		c.Webhooks.URL = o.WebhookURL
	}
	if o.AdvertURL != "" {
		c.Webhooks.AdvertURL = o.AdvertURL
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Webhooks.TimeoutSeconds <= 0 {
		c.Webhooks.TimeoutSeconds = defaultWebhookTimeout
	}
	if len(c.Misc.AdvertRoles) == 0 {
		c.Misc.AdvertRoles = DefaultAdvertRoles()
	}
	if len(c.Misc.GimpLines) == 0 {
		c.Misc.GimpLines = DefaultGimpLines()
	}
}

func (c *Config) WebhookTimeout() time.Duration {
	return time.Duration(c.Webhooks.TimeoutSeconds) * time.Second
}

// Checks config for important or missing keys / values and returns error if missing.
func (c *Config) CheckConfig() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("missing key: database host")
		}

		if c.Database.Port == 0 {
			return fmt.Errorf("missing key: database port")
		}

		if c.Database.User == "" {
			return fmt.Errorf("missing key: database user")
		}

		if c.Database.Password == "" {
			return fmt.Errorf("missing key: database password")
		}

		if c.Database.Database == "" {
			return fmt.Errorf("missing key: database name")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("missing key: database path")
		}
	default:
		return fmt.Errorf("invalid key: database driver %q (want postgres or sqlite)", c.Database.Driver)
	}

	if !c.Webhooks.Enabled {
		return nil
	}

	if c.Webhooks.URL == "" {
		return fmt.Errorf("missing key: webhooks webhook_url")
	}

	if c.Webhooks.Advert.Enabled {
		if c.Webhooks.AdvertURL == "" {
			return fmt.Errorf("missing key: webhooks advert_url")
		}

		if len(c.Misc.AdvertTitles) == 0 {
			return fmt.Errorf("missing key: misc advert_titles")
		}
	}

	for _, r := range c.Misc.AdvertRoles {
		if r.Mention == "" || len(r.Keywords) == 0 {
			return fmt.Errorf("invalid key: misc advert_roles entry %v needs keywords and a mention", r.Keywords)
		}
	}

	return nil
}
