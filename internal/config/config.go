// internal/config/config.go
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres | sqlite
	URL    string `mapstructure:"url"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Env         string `mapstructure:"env"`
	FrontendURL string `mapstructure:"frontend_url"`
}

type AuthConfig struct {
	SessionSecret       string        `mapstructure:"session_secret"`
	SessionTTL          time.Duration `mapstructure:"session_ttl"`
	CookieName          string        `mapstructure:"cookie_name"`
	RequireVerification bool          `mapstructure:"require_verification"`
	// DevHeaderAuth は Cookie の代わりに X-User-ID ヘッダーでユーザーを指定する開発用モードです
	DevHeaderAuth       bool          `mapstructure:"dev_header_auth"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // log | smtp | ses
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // static_credentials | iam_role
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	App      AppConfig      `mapstructure:"app"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	SES      SESConfig      `mapstructure:"ses"`
}

// IsProduction は Secure Cookie などの本番専用設定を有効にするかを返します
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, EnvProduction)
}

var Cfg Config

// LoadConfig は path 配下の config.yaml と環境変数から設定を読み込みます
func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP") // 例: APP_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("auth.session_secret", "SESSION_SECRET")
	_ = v.BindEnv("app.env", "APP_ENV")

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("app.name", AppName)
	v.SetDefault("app.env", EnvDev)
	v.SetDefault("app.frontend_url", "http://localhost:8080")
	v.SetDefault("auth.session_ttl", DefaultSessionTTL)
	v.SetDefault("auth.cookie_name", DefaultCookieName)
	v.SetDefault("auth.require_verification", true)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("mailer.type", "log")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	if err := applyDefaults(&cfg); err != nil {
		return err
	}
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("App Env: %s", Cfg.App.Env)
	return nil
}

// applyDefaults は読み込み後の値を検証し、足りない値を補います
func applyDefaults(cfg *Config) error {
	if cfg.Database.URL == "" {
		if cfg.Database.Driver == DriverSQLite {
			log.Println("Database URL not set, using default sqlite file")
			cfg.Database.URL = DefaultSQLiteURL
		} else {
			log.Println("Warning: Database URL is not set in config.")
		}
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = DefaultSessionTTL
	}
	if cfg.Auth.SessionSecret == "" {
		if cfg.IsProduction() {
			return errors.New("auth.session_secret (SESSION_SECRET) is required in production")
		}
		log.Println("Warning: session secret not set, using insecure development secret")
		cfg.Auth.SessionSecret = DevSessionSecret
	}
	if cfg.Auth.DevHeaderAuth && cfg.IsProduction() {
		return errors.New("auth.dev_header_auth must not be enabled in production")
	}
	return nil
}
