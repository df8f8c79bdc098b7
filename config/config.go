package config

import (
	"fmt"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabasePath         string `mapstructure:"DB_PATH"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	ShareBaseURL         string `mapstructure:"SHARE_BASE_URL"`
	ShareExpiryDays      int    `mapstructure:"SHARE_EXPIRY_DAYS"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	// Enable automatic environment variable reading first
	viper.AutomaticEnv()

	// Bind environment variables to config keys
	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "DB_PATH",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
		"SHARE_BASE_URL", "SHARE_EXPIRY_DAYS", "SCHEDULER_ENABLED",
		"CORS_ALLOW_ORIGINS",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	// Check if key environment variables are already set
	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_PATH")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		// Load base .env file
		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		// Load .env.local overrides if it exists
		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	log.Info("Successfully initialized config", "config", config)
	if err := validateConfig(&config, log); err != nil {
		return Config{}, err
	}
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config *Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.DatabasePath == "" {
		return log.Error("Fatal error: DB_PATH is required")
	}

	if config.ShareExpiryDays <= 0 {
		config.ShareExpiryDays = 7
	}

	if config.ShareBaseURL == "" {
		config.ShareBaseURL = fmt.Sprintf("http://localhost:%d", config.ServerPort)
	}

	ConfigInstance = *config
	return nil
}
