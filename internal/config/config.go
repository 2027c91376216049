package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int    `mapstructure:"port"                  validate:"required,gt=0,lt=65536"`
	LogLevel            string `mapstructure:"log_level"             validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"  validate:"gte=1"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	// JWTSecret is the HMAC signing secret. Read once at startup; rotating it
	// invalidates every outstanding token.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the validity window of an issued token.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=1440"`

	// BCryptCost is the work factor used when hashing new passwords.
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`

	// IdentityLookupTimeoutMS bounds the user store lookup done by the request gate.
	IdentityLookupTimeoutMS int `mapstructure:"identity_lookup_timeout_ms" validate:"gt=0"`

	// BypassRoutes lists "METHOD /path" pairs the request gate forwards untouched.
	BypassRoutes []string `mapstructure:"bypass_routes" validate:"dive,required"`
}
