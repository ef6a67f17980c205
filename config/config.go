package config

import (
	"fmt"
	"net"
	"net/url"
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
		Name           string `envconfig:"APP_NAME"`
		HotelName      string `envconfig:"HOTEL_NAME" default:"Verse One Hotel"`
		CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"$"`
		BaseURL        string `envconfig:"BASE_URL"`
		Timezone       string `envconfig:"TIMEZONE"`
		CORS           struct {
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
		APIKey  string `envconfig:"API_KEY"`
		Receipt struct {
			FontRegular string `envconfig:"FONT_REGULAR"`
			FontBold    string `envconfig:"FONT_BOLD"`
			FontItalic  string `envconfig:"FONT_ITALIC"`
		} `envconfig:"RECEIPT"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres Postgres `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingCreated string `envconfig:"BOOKING_CREATED" default:"booking.created"`
			ContactCreated string `envconfig:"CONTACT_CREATED" default:"contact.created"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Mail struct {
		Host           string `envconfig:"HOST"`
		Port           int    `envconfig:"PORT" default:"587"`
		Username       string `envconfig:"USERNAME"`
		Password       string `envconfig:"PASSWORD"`
		FromName       string `envconfig:"FROM_NAME" default:"Verse One Hotel"`
		FromAddress    string `envconfig:"FROM_ADDRESS"`
		AdminAddress   string `envconfig:"ADMIN_ADDRESS"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"30"`
	} `envconfig:"MAIL"`

	Token struct {
		ResetPasswordExpireMin int `envconfig:"RESET_PASSWORD_EXPIRE_MIN" default:"15"`
		VerifyEmailExpireMin   int `envconfig:"VERIFY_EMAIL_EXPIRE_MIN" default:"1440"`
	} `envconfig:"TOKEN"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		Storage struct {
			Provider  string `envconfig:"PROVIDER" default:"s3"`
			Directory string `envconfig:"DIRECTORY" default:"rooms"`
		} `envconfig:"STORAGE"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
		} `envconfig:"S3"`
		Cloudinary struct {
			CloudName string `envconfig:"CLOUD_NAME"`
			APIKey    string `envconfig:"API_KEY"`
			APISecret string `envconfig:"API_SECRET"`
		} `envconfig:"CLOUDINARY"`
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
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Postgres struct {
	MaxRetry       int          `envconfig:"MAX_RETRY" default:"3"`
	RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MaxOpenConns   int          `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns   int          `envconfig:"MAX_IDLE_CONNS" default:"10"`
	MigrationTable string       `envconfig:"MIGRATION_TABLE"`
	Prefix         string       `envconfig:"PREFIX"`
	Read           PostgresNode `envconfig:"READ"`
	Write          PostgresNode `envconfig:"WRITE"`
}

// URL renders a postgres:// connection URL for node. Prefix is prepended to the database name and extra is merged into the query.
func (p Postgres) URL(node PostgresNode, extra url.Values) *url.URL {
	query := url.Values{}
	query.Set("sslmode", node.SSLMode)

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     p.Prefix + node.Name,
		RawQuery: query.Encode(),
	}
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
