package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Push     PushConfig     `mapstructure:"push" validate:"required"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RateLimitRequests is the number of requests allowed per
	// RateLimitWindowMinutes for a single client IP.
	RateLimitRequests      int `mapstructure:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindowMinutes int `mapstructure:"rate_limit_window_minutes" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// PushConfig contains settings for the push-notification gateway.
type PushConfig struct {
	// Endpoint is the HTTP endpoint of the FCM-compatible push gateway.
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`

	// ServerKey authorizes requests against the gateway.
	ServerKey string `mapstructure:"server_key" validate:"required"`

	// TimeoutSeconds bounds a single gateway call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// NotifyConfig contains settings for the in-process notification dispatcher.
type NotifyConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gte=0"`
	QueueSize   int `mapstructure:"queue_size" validate:"gte=0"`
}
