package app

import (
	"time"

	"github.com/joefazee/neo-admin/internal/cache"
	"github.com/joefazee/neo-admin/internal/media"
	"github.com/joefazee/neo-admin/internal/nexus"
)

// DefaultConfigFile is read when present in the working directory.
const DefaultConfigFile = "neo-admin.yaml"

type Config struct {
	API   APIConfig   `yaml:"api"`
	Auth  AuthConfig  `yaml:"auth"`
	Cache CacheConfig `yaml:"cache"`
	Media MediaConfig `yaml:"media"`
	UI    UIConfig    `yaml:"ui"`
	Log   LogConfig   `yaml:"log"`
	Stub  StubConfig  `yaml:"stub"`
}

type APIConfig struct {
	BaseURL           string        `yaml:"base_url" env:"ADMIN_API_URL" env-default:"http://localhost:5000/api/v1" validate:"required,url"`
	Timeout           time.Duration `yaml:"timeout" env:"ADMIN_API_TIMEOUT" env-default:"15s" validate:"gt=0"`
	ResetPasswordPath string        `yaml:"reset_password_path" env:"ADMIN_RESET_PASSWORD_PATH" env-default:"/auth/reset-password" validate:"startswith=/"`
}

type AuthConfig struct {
	Token string `yaml:"token" env:"ADMIN_TOKEN"`
	// UserID overrides the user id read from the token.
	UserID       string `yaml:"user_id" env:"ADMIN_USER_ID"`
	SymmetricKey string `yaml:"symmetric_key" env:"ADMIN_SYMMETRIC_KEY" validate:"omitempty,len=32"`
}

type CacheConfig struct {
	Backend       string        `yaml:"backend" env:"ADMIN_CACHE_BACKEND" env-default:"memory" validate:"oneof=memory redis"`
	RedisAddr     string        `yaml:"redis_addr" env:"ADMIN_REDIS_ADDR" validate:"required_if=Backend redis"`
	RedisPassword string        `yaml:"redis_password" env:"ADMIN_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"ADMIN_REDIS_DB" env-default:"0" validate:"gte=0"`
	KeyPrefix     string        `yaml:"key_prefix" env:"ADMIN_CACHE_PREFIX" env-default:"neo-admin:"`
	TTL           time.Duration `yaml:"ttl" env:"ADMIN_CACHE_TTL" env-default:"24h" validate:"gte=0"`
}

// RedisOptions maps the cache section onto the redis backend settings.
func (c *CacheConfig) RedisOptions() *cache.RedisOptions {
	if c.Backend != cache.RedisBackend {
		return nil
	}
	return &cache.RedisOptions{
		Addr:      c.RedisAddr,
		Password:  c.RedisPassword,
		DB:        c.RedisDB,
		KeyPrefix: c.KeyPrefix,
	}
}

type MediaConfig struct {
	Endpoint  string `yaml:"endpoint" env:"ADMIN_MEDIA_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"ADMIN_MEDIA_ACCESS_KEY" validate:"required_with=Endpoint"`
	SecretKey string `yaml:"secret_key" env:"ADMIN_MEDIA_SECRET_KEY" validate:"required_with=Endpoint"`
	Bucket    string `yaml:"bucket" env:"ADMIN_MEDIA_BUCKET" env-default:"neo-admin"`
	UseSSL    bool   `yaml:"use_ssl" env:"ADMIN_MEDIA_SSL"`
	PublicURL string `yaml:"public_url" env:"ADMIN_MEDIA_PUBLIC_URL" validate:"omitempty,url"`
}

// Enabled reports whether uploads are configured.
func (c *MediaConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c *MediaConfig) Minio() media.MinioConfig {
	return media.MinioConfig{
		Endpoint:  c.Endpoint,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Bucket:    c.Bucket,
		UseSSL:    c.UseSSL,
		PublicURL: c.PublicURL,
	}
}

type UIConfig struct {
	PageSize int  `yaml:"page_size" env:"ADMIN_PAGE_SIZE" env-default:"4" validate:"min=1,max=100"`
	Color    bool `yaml:"color" env:"ADMIN_COLOR" env-default:"true"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"ADMIN_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error fatal off"`
}

type StubConfig struct {
	Addr  string `yaml:"addr" env:"STUB_ADDR" env-default:":5000"`
	Token string `yaml:"token" env:"STUB_TOKEN"`
	// AdminID and AdminPassword seed the account the reset endpoint changes.
	AdminID       string `yaml:"admin_id" env:"STUB_ADMIN_ID" env-default:"admin"`
	AdminPassword string `yaml:"admin_password" env:"STUB_ADMIN_PASSWORD" env-default:"change-me-now" validate:"min=8"`
	Seed          bool   `yaml:"seed" env:"STUB_SEED" env-default:"true"`
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig(opts ...nexus.LoaderOption) (*Config, error) {
	c := &Config{}
	opts = append([]nexus.LoaderOption{nexus.WithDefaultFileName(DefaultConfigFile)}, opts...)
	err := nexus.NewLoader(opts...).Load(c)
	return c, err
}
