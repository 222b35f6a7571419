package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config mirrors the layout of config/config.yaml.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Site     SiteConfig     `mapstructure:"site"`
	Lead     LeadConfig     `mapstructure:"lead"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Mode      string `mapstructure:"mode"`
	Address   string `mapstructure:"address"`
	StaticDir string `mapstructure:"staticDir"`
	MediaDir  string `mapstructure:"mediaDir"`
	// FlashSecret signs the one-shot notice cookie. A random key is used when empty.
	FlashSecret  string `mapstructure:"flashSecret"`
	SecureCookie bool   `mapstructure:"secureCookie"`
	// TrustedProxies lists the proxy addresses or CIDRs whose X-Forwarded-For is honoured.
	// Empty means the client IP is always the socket peer.
	TrustedProxies []string `mapstructure:"trustedProxies"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	DisableCaller     bool   `mapstructure:"disableCaller"`
	DisableStacktrace bool   `mapstructure:"disableStacktrace"`
}

// DatabaseConfig covers the relational store and the cache.
type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Debug    bool           `mapstructure:"debug"`
}

// SqliteConfig is used when Driver is "sqlite".
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig is used when Driver is "postgres".
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

// RedisConfig enables the shared cache when Address is set.
type RedisConfig struct {
	Address       string        `mapstructure:"address"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	CheckInterval time.Duration `mapstructure:"checkInterval"`
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Address) != ""
}

// SiteConfig describes the business shown in metadata fallbacks and JSON-LD.
type SiteConfig struct {
	BaseURL            string   `mapstructure:"baseURL"`
	Name               string   `mapstructure:"name"`
	TitleSuffix        string   `mapstructure:"titleSuffix"`
	DefaultDescription string   `mapstructure:"defaultDescription"`
	DefaultImage       string   `mapstructure:"defaultImage"`
	TwitterSite        string   `mapstructure:"twitterSite"`
	Telephone          string   `mapstructure:"telephone"`
	Email              string   `mapstructure:"email"`
	StreetAddress      string   `mapstructure:"streetAddress"`
	Locality           string   `mapstructure:"locality"`
	Region             string   `mapstructure:"region"`
	PostalCode         string   `mapstructure:"postalCode"`
	Country            string   `mapstructure:"country"`
	PriceRange         string   `mapstructure:"priceRange"`
	AreaServed         []string `mapstructure:"areaServed"`
	SameAs             []string `mapstructure:"sameAs"`
}

// LeadConfig tunes form capture.
type LeadConfig struct {
	// MaxPerIPPerDay limits submissions per client IP over a rolling day. 0 disables the limit.
	MaxPerIPPerDay int `mapstructure:"maxPerIPPerDay"`
}

// AdminConfig configures the operator API. Header and Title are static strings handed to the
// admin handler, never mutated at runtime.
type AdminConfig struct {
	Header         string            `mapstructure:"header"`
	Title          string            `mapstructure:"title"`
	Accounts       map[string]string `mapstructure:"accounts"`
	AllowedOrigins []string          `mapstructure:"allowedOrigins"`
}

// Load reads config.yaml from ./config or the working directory; every key can be overridden
// from the environment, e.g. GATI_SERVER_ADDRESS.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GATI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus environment are a complete configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.staticDir", "./static")
	v.SetDefault("server.mediaDir", "./media")
	v.SetDefault("server.secureCookie", false)
	v.SetDefault("server.trustedProxies", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.development", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "gati.db")
	v.SetDefault("database.postgres.maxOpenConns", 10)
	v.SetDefault("database.postgres.maxIdleConns", 5)
	v.SetDefault("database.postgres.connMaxLifetime", "30m")
	v.SetDefault("database.redis.address", "")
	v.SetDefault("database.redis.checkInterval", "5s")

	v.SetDefault("site.baseURL", "https://www.expertgatipackers.com")
	v.SetDefault("site.name", "Expert Gati Packers and Movers")
	v.SetDefault("site.titleSuffix", "Expert Gati Packers and Movers")
	v.SetDefault("site.defaultDescription", "Expert Gati Packers and Movers offers safe, reliable and affordable home, office, international and pet relocation services in Pune, Mumbai and across India.")
	v.SetDefault("site.defaultImage", "/static/images/og-default.jpg")
	v.SetDefault("site.telephone", "+91-9000000000")
	v.SetDefault("site.email", "info@expertgatipackers.com")
	v.SetDefault("site.locality", "Pune")
	v.SetDefault("site.region", "Maharashtra")
	v.SetDefault("site.country", "IN")
	v.SetDefault("site.priceRange", "₹₹")
	v.SetDefault("site.areaServed", []string{"Pune", "Mumbai", "India"})

	v.SetDefault("lead.maxPerIPPerDay", 0)

	v.SetDefault("admin.header", "Expert Gati Administration")
	v.SetDefault("admin.title", "Expert Gati Admin Portal")
}
