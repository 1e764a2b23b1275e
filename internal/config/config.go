package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Postgres struct {
		DSN      string `koanf:"dsn"`
		MaxConns int32  `koanf:"max_conns"`
	} `koanf:"postgres"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Session struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"session"`

	Security struct {
		JWTSecret string `koanf:"jwt_secret"`
		TokenTTL  int    `koanf:"token_ttl_hours"`
	} `koanf:"security"`

	Pricing struct {
		TaxRate               string `koanf:"tax_rate"`
		FreeShippingThreshold string `koanf:"free_shipping_threshold"`
	} `koanf:"pricing"`

	Midtrans struct {
		ServerKey  string `koanf:"server_key"`
		Production bool   `koanf:"production"`
	} `koanf:"midtrans"`

	Resend struct {
		APIKey string `koanf:"api_key"`
		From   string `koanf:"from"`
	} `koanf:"resend"`

	Newsletter struct {
		// "local" or "abstractapi"
		Validator         string `koanf:"validator"`
		AbstractAPIKey    string `koanf:"abstractapi_key"`
		ConfirmBaseURL    string `koanf:"confirm_base_url"`
		SendConfirmEmails bool   `koanf:"send_confirm_emails"`
	} `koanf:"newsletter"`
}

// Load reads base.yaml, an optional env overlay, then MERCH_ env vars.
// e.g. MERCH_POSTGRES__DSN, MERCH_MIDTRANS__SERVER_KEY
func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// env overlay is optional for local runs
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	if err := k.Load(env.Provider("MERCH_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "MERCH_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr required")
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret required")
	}
	if _, err := decimal.NewFromString(c.Pricing.TaxRate); err != nil {
		return fmt.Errorf("pricing.tax_rate: %w", err)
	}
	if _, err := decimal.NewFromString(c.Pricing.FreeShippingThreshold); err != nil {
		return fmt.Errorf("pricing.free_shipping_threshold: %w", err)
	}
	return nil
}

// TaxRate returns the validated tax rate as a decimal.
func (c Config) TaxRate() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Pricing.TaxRate)
	return d
}

// FreeShippingThreshold returns the validated threshold as a decimal.
func (c Config) FreeShippingThreshold() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Pricing.FreeShippingThreshold)
	return d
}
