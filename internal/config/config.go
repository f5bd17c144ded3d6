package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Raffle    RaffleConfig
	VRF       VRFConfig
	Treasury  TreasuryConfig
	Keeper    KeeperConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// RaffleConfig holds the immutable round parameters. They are fixed for
// the lifetime of the process; changing them requires a restart.
type RaffleConfig struct {
	StakeAmount  float64
	DrawInterval time.Duration
}

// VRFConfig holds randomness coordinator configuration
type VRFConfig struct {
	BaseURL          string
	APIKey           string
	CallbackURL      string
	MinConfirmations int
	CallbackGasLimit int
	NumWords         int
	Mock             bool
	MockFulfillDelay time.Duration
}

// TreasuryConfig holds settlement rail configuration
type TreasuryConfig struct {
	BaseURL string
	APIKey  string
	Mock    bool
}

// KeeperConfig holds the in-process automation trigger configuration
type KeeperConfig struct {
	Enabled      bool
	PollInterval time.Duration
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	Enabled  bool
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AdminConfig holds the operator credentials (password as bcrypt hash)
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// RateLimitConfig holds the per-client entry rate limit
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LogConfig holds logging configuration. File enables rotating output.
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(GetEnv("CONFIG_PATH", "."))
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("Raffle.StakeAmount", 10.0)
	viper.SetDefault("Raffle.DrawInterval", "10m")
	viper.SetDefault("VRF.BaseURL", "http://localhost:9050")
	viper.SetDefault("VRF.CallbackURL", "http://localhost:4000/api/v1/vrf/fulfillments")
	viper.SetDefault("VRF.MinConfirmations", 3)
	viper.SetDefault("VRF.CallbackGasLimit", 100000)
	viper.SetDefault("VRF.NumWords", 1)
	viper.SetDefault("VRF.Mock", true)
	viper.SetDefault("VRF.MockFulfillDelay", "250ms")
	viper.SetDefault("Treasury.BaseURL", "http://localhost:9060")
	viper.SetDefault("Treasury.Mock", true)
	viper.SetDefault("Keeper.Enabled", true)
	viper.SetDefault("Keeper.PollInterval", "5s")
	viper.SetDefault("MongoDB.Enabled", false)
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "raffle")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Admin.Email", "operator@example.com")
	viper.SetDefault("RateLimit.RequestsPerSecond", 5.0)
	viper.SetDefault("RateLimit.Burst", 10)
	viper.SetDefault("Log.Level", "info")
	viper.SetDefault("Log.Format", "text")
	viper.SetDefault("Log.MaxSizeMB", 100)
	viper.SetDefault("Log.MaxBackups", 3)
	viper.SetDefault("Log.MaxAgeDays", 28)
}
