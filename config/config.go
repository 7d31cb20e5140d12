package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Version  string `envconfig:"VERSION"  default:"dev"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
				PoolSize int    `envconfig:"POOL_SIZE"`
			} `envconfig:"PRIMARY"`
			DialTimeoutSeconds int `envconfig:"DIAL_TIMEOUT_SECONDS" default:"5"`
		} `envconfig:"REDIS"`
		TTL       int    `envconfig:"TTL"`
		Namespace string `envconfig:"NAMESPACE" default:"pms"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret  string `envconfig:"ACCESS_SECRET"`
		Issuer        string `envconfig:"ISSUER"`
		Audience      string `envconfig:"AUDIENCE"`
		LeewaySeconds int    `envconfig:"LEEWAY_SECONDS" default:"30"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Pool           struct {
				MaxOpenConns           int `envconfig:"MAX_OPEN_CONNS"            default:"10"`
				MaxIdleConns           int `envconfig:"MAX_IDLE_CONNS"            default:"10"`
				ConnMaxLifetimeSeconds int `envconfig:"CONN_MAX_LIFETIME_SECONDS" default:"300"`
			} `envconfig:"POOL"`
			Read  PostgresNode `envconfig:"READ"`
			Write PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Event struct {
		Broker          string `envconfig:"BROKER" default:"none"`
		NightAuditTopic string `envconfig:"NIGHT_AUDIT_TOPIC" default:"night_audit.completed"`
	} `envconfig:"EVENT"`

	Kafka struct {
		Brokers             []string `envconfig:"BROKERS"`
		WriteTimeoutSeconds int      `envconfig:"WRITE_TIMEOUT_SECONDS" default:"10"`
		SASL                struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	RabbitMQ struct {
		URL      string `envconfig:"URL"`
		Exchange string `envconfig:"EXCHANGE" default:"pms.events"`
	} `envconfig:"RABBITMQ"`

	NightAudit struct {
		DefaultPageSize  int    `envconfig:"DEFAULT_PAGE_SIZE" default:"30"`
		MaxPageSize      int    `envconfig:"MAX_PAGE_SIZE"     default:"100"`
		AllowFutureDates bool   `envconfig:"ALLOW_FUTURE_DATES"`
		ArchiveDirectory string `envconfig:"ARCHIVE_DIRECTORY" default:"night-audits"`
	} `envconfig:"NIGHT_AUDIT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			Enable          bool   `envconfig:"ENABLE"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			Region          string `envconfig:"REGION" default:"auto"`
			UsePathStyle    bool   `envconfig:"USE_PATH_STYLE" default:"true"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
