package config

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/spf13/viper"

	"retaildash/pkg/utils"
)

var Validate *validator.Validate

type Config struct {
	ServerPort         int    `mapstructure:"SERVER_PORT"`
	DatabaseDSN        string `mapstructure:"DATABASE_DSN"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	BcryptCost         int    `mapstructure:"BCRYPT_COST"`
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `mapstructure:"GOOGLE_CALLBACK_URL"`
	FrontendURL        string `mapstructure:"FRONTEND_URL"`
	CORSOrigins        string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_PORT", 5000)
	viper.SetDefault("DATABASE_DSN", "root:password@tcp(localhost:3306)/retail_dashboard?charset=utf8mb4&parseTime=True&loc=Local")
	// Random secret per process when unset. Tokens do not survive a restart
	// without a configured secret; never a hardcoded fallback.
	viper.SetDefault("JWT_SECRET", utils.GenerateRandomString(32))
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("GOOGLE_CALLBACK_URL", "http://localhost:5000/api/auth/google/callback")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	viper.BindEnv("GOOGLE_CLIENT_ID")
	viper.BindEnv("GOOGLE_CLIENT_SECRET")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/retaildash/")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Validate = validator.New()

	return &cfg, nil
}
