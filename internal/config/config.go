package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Billing  BillingConfig  `mapstructure:"billing"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	GinMode         string        `mapstructure:"gin_mode"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Issuer    string        `mapstructure:"issuer"`
}

type DynamoDBConfig struct {
	Region          string       `mapstructure:"region"`
	Endpoint        string       `mapstructure:"endpoint"`
	AccessKeyID     string       `mapstructure:"access_key_id"`
	SecretAccessKey string       `mapstructure:"secret_access_key"`
	Tables          TablesConfig `mapstructure:"tables"`
}

type TablesConfig struct {
	Assignments   string `mapstructure:"assignments"`
	Paysheets     string `mapstructure:"paysheets"`
	Users         string `mapstructure:"users"`
	Notifications string `mapstructure:"notifications"`
	Conversations string `mapstructure:"conversations"`
	Messages      string `mapstructure:"messages"`
}

type StorageConfig struct {
	Driver       string      `mapstructure:"driver"`
	UploadRoot   string      `mapstructure:"upload_root"`
	LegacyRoots  []string    `mapstructure:"legacy_roots"`
	MaxFileBytes int64       `mapstructure:"max_file_bytes"`
	Thumbnails   bool        `mapstructure:"thumbnails"`
	ThumbWidth   int         `mapstructure:"thumb_width"`
	MinIO        MinIOConfig `mapstructure:"minio"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type RabbitMQConfig struct {
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
	QueueName  string `mapstructure:"queue_name"`
	Consume    bool   `mapstructure:"consume"`
}

type GatewayConfig struct {
	MerchantID        string `mapstructure:"merchant_id"`
	MerchantSecret    string `mapstructure:"merchant_secret"`
	Currency          string `mapstructure:"currency"`
	MPAccessToken     string `mapstructure:"mp_access_token"`
	MPTestPayerEmail  string `mapstructure:"mp_test_payer_email"`
	MPTestPayerUserID string `mapstructure:"mp_test_payer_user_id"`
	Mock              bool   `mapstructure:"mock"`
}

type BillingConfig struct {
	ProfitAdminID string `mapstructure:"profit_admin_id"`
}

type DispatchConfig struct {
	Async       bool          `mapstructure:"async"`
	Workers     int           `mapstructure:"workers"`
	QueueSize   int           `mapstructure:"queue_size"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

// legacyEnv keeps the plain variable names of earlier deployments working.
var legacyEnv = map[string]string{
	"dynamodb.region":            "AWS_REGION",
	"dynamodb.access_key_id":     "AWS_ACCESS_KEY_ID",
	"dynamodb.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"gateway.mp_access_token":    "MP_ACCESS_TOKEN",
	"gateway.mock":               "MP_MOCK",
	"auth.jwt_secret":            "JWT_SECRET",
	"server.address":             "HTTP_ADDR",
}

// Load reads .env, an optional config.yaml in ./config or . and the
// environment, in increasing priority.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "minio" && (c.Storage.MinIO.Endpoint == "" || c.Storage.MinIO.Bucket == "") {
		return fmt.Errorf("minio storage needs an endpoint and a bucket")
	}
	if c.Dispatch.Workers < 1 {
		return fmt.Errorf("dispatch.workers must be at least 1")
	}
	if c.Dispatch.MaxAttempts < 1 {
		return fmt.Errorf("dispatch.max_attempts must be at least 1")
	}
	return nil
}

// CheckoutEnabled reports whether the hosted card checkout can sign forms.
func (c GatewayConfig) CheckoutEnabled() bool {
	return c.MerchantID != "" && c.MerchantSecret != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.gin_mode", "debug")

	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.issuer", "proassignment")

	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.access_key_id", "local")
	v.SetDefault("dynamodb.secret_access_key", "local")
	v.SetDefault("dynamodb.tables.assignments", "assignments")
	v.SetDefault("dynamodb.tables.paysheets", "paysheets")
	v.SetDefault("dynamodb.tables.users", "users")
	v.SetDefault("dynamodb.tables.notifications", "notifications")
	v.SetDefault("dynamodb.tables.conversations", "conversations")
	v.SetDefault("dynamodb.tables.messages", "messages")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.upload_root", "uploads")
	v.SetDefault("storage.legacy_roots", []string{})
	v.SetDefault("storage.max_file_bytes", 20<<20)
	v.SetDefault("storage.thumbnails", true)
	v.SetDefault("storage.thumb_width", 320)
	v.SetDefault("storage.minio.endpoint", "")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "proassignment")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "proassignment.events")

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "proassignment_exchange")
	v.SetDefault("rabbitmq.routing_key", "notification.email")
	v.SetDefault("rabbitmq.queue_name", "notification_email_queue")
	v.SetDefault("rabbitmq.consume", false)

	v.SetDefault("gateway.merchant_id", "")
	v.SetDefault("gateway.merchant_secret", "")
	v.SetDefault("gateway.currency", "LKR")
	v.SetDefault("gateway.mp_access_token", "")
	v.SetDefault("gateway.mp_test_payer_email", "")
	v.SetDefault("gateway.mp_test_payer_user_id", "")
	v.SetDefault("gateway.mock", false)

	v.SetDefault("billing.profit_admin_id", "")

	v.SetDefault("dispatch.async", false)
	v.SetDefault("dispatch.workers", 4)
	v.SetDefault("dispatch.queue_size", 256)
	v.SetDefault("dispatch.max_attempts", 3)
	v.SetDefault("dispatch.retry_delay", "200ms")
	v.SetDefault("dispatch.timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", "12h")
}
