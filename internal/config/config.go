package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config é lido do ambiente (e de um .env opcional na raiz).
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL     string        `env:"DATABASE_URL,required"`
	RunMigrations   bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	CORSOrigins     string        `env:"CORS_ORIGINS" envDefault:"*"`
	TrustProxy      bool          `env:"TRUST_PROXY" envDefault:"false"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	DB       DBConfig
	Storage  StorageConfig
	Airtable AirtableConfig
	RabbitMQ RabbitMQConfig
	SMTP     SMTPConfig
	Admin    AdminConfig

	WhatsAppLink    string        `env:"WHATSAPP_COMMUNITY_LINK"`
	SideTaskTimeout time.Duration `env:"SIDE_TASK_TIMEOUT" envDefault:"15s"`
}

type DBConfig struct {
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"1m"`
}

type StorageConfig struct {
	Endpoint        string `env:"SUPABASE_STORAGE_S3_ENDPOINT"`
	Region          string `env:"SUPABASE_STORAGE_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"SUPABASE_STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SUPABASE_STORAGE_SECRET_ACCESS_KEY"`
	PublicBaseURL   string `env:"SUPABASE_URL"`
	ImageBucket     string `env:"STORAGE_IMAGE_BUCKET" envDefault:"images"`
	DocumentBucket  string `env:"STORAGE_DOCUMENT_BUCKET" envDefault:"pdf-guides"`
	MaxUploadMB     int64  `env:"MAX_UPLOAD_MB" envDefault:"50"`
}

type AirtableConfig struct {
	Token   string `env:"AIRTABLE_PAT"`
	BaseID  string `env:"AIRTABLE_BASE_ID"`
	Table   string `env:"AIRTABLE_TABLE_NAME" envDefault:"Form Submissions"`
	BaseURL string `env:"AIRTABLE_API_URL" envDefault:"https://api.airtable.com/v0"`
}

type RabbitMQConfig struct {
	URL string `env:"AMQP_URL"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"no-reply@seerahhajj.com"`
	NotifyTo string `env:"LEAD_NOTIFY_EMAIL"`
}

type AdminConfig struct {
	PasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	Password     string        `env:"ADMIN_PASSWORD"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`
}

// Load carrega o .env (se existir) e faz o parse das variáveis.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("falha ao ler configuração: %w", err)
	}
	return cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (s StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

func (a AirtableConfig) Enabled() bool {
	return a.Token != "" && a.BaseID != ""
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.NotifyTo != ""
}
