package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	DynamoDB DynamoDBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	OTP      OTPConfig
	SMS      SMSConfig
	Places   PlacesConfig
	Catalog  CatalogConfig
	Debug    bool
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DynamoDBConfig struct {
	Endpoint  string
	Region    string
	TableName string
}

type RedisConfig struct {
	Endpoint string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey  string
	Expiry     time.Duration
	CookieName string
}

type OTPConfig struct {
	Length      int
	Expiry      time.Duration
	MaxAttempts int
}

// SMSConfig selects the outbound SMS provider. Provider is either
// "gateway" (the TOP4 basic-auth SMS backend) or "twilio".
type SMSConfig struct {
	Provider string

	GatewayBaseURL  string
	GatewayUser     string
	GatewayPassword string
	GatewayTimeout  time.Duration

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
}

type PlacesConfig struct {
	APIKey string
}

type CatalogConfig struct {
	// Path to an optional YAML file overriding the built-in
	// city/vehicle/rate tables. Empty means built-ins only.
	FilePath string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		DynamoDB: DynamoDBConfig{
			Endpoint:  getEnv("DYNAMODB_ENDPOINT", ""),
			Region:    getEnv("DYNAMODB_REGION", "ap-south-1"),
			TableName: getEnv("DYNAMODB_TABLE_NAME", "Top4Table"),
		},
		Redis: RedisConfig{
			Endpoint: getEnv("REDIS_ENDPOINT", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", ""),
			Expiry:     getEnvAsDuration("JWT_EXPIRY", 30*24*time.Hour),
			CookieName: getEnv("AUTH_COOKIE_NAME", "top4_session"),
		},
		OTP: OTPConfig{
			Length:      getEnvAsInt("OTP_LENGTH", 6),
			Expiry:      getEnvAsDuration("OTP_EXPIRY", 5*time.Minute),
			MaxAttempts: getEnvAsInt("OTP_MAX_ATTEMPTS", 5),
		},
		SMS: SMSConfig{
			Provider:         getEnv("SMS_PROVIDER", "gateway"),
			GatewayBaseURL:   getEnv("SMS_GATEWAY_URL", ""),
			GatewayUser:      getEnv("SMS_GATEWAY_USER", ""),
			GatewayPassword:  getEnv("SMS_GATEWAY_PASSWORD", ""),
			GatewayTimeout:   getEnvAsDuration("SMS_GATEWAY_TIMEOUT", 10*time.Second),
			TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			TwilioFrom:       getEnv("TWILIO_FROM", ""),
		},
		Places: PlacesConfig{
			APIKey: getEnv("GOOGLE_PLACES_API_KEY", ""),
		},
		Catalog: CatalogConfig{
			FilePath: getEnv("CATALOG_FILE", ""),
		},
		Debug: getEnvAsBool("APP_DEBUG", false),
	}

	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is required")
	}

	if len(cfg.JWT.SecretKey) < 32 {
		return nil, fmt.Errorf("JWT_SECRET_KEY must be at least 32 bytes (256 bits)")
	}

	switch cfg.SMS.Provider {
	case "gateway":
		if cfg.SMS.GatewayBaseURL == "" {
			return nil, fmt.Errorf("SMS_GATEWAY_URL is required when SMS_PROVIDER=gateway")
		}
	case "twilio":
		if cfg.SMS.TwilioAccountSID == "" || cfg.SMS.TwilioAuthToken == "" || cfg.SMS.TwilioFrom == "" {
			return nil, fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM are required when SMS_PROVIDER=twilio")
		}
	default:
		return nil, fmt.Errorf("unknown SMS_PROVIDER %q", cfg.SMS.Provider)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
