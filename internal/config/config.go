/**
 * @description
 * This file handles the configuration management for the billing-service.
 * It uses the Viper library to read settings from environment variables or
 * a local .env file.
 *
 * @dependencies
 * - github.com/spf13/viper: A powerful configuration library for Go applications.
 */
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerPort             string `mapstructure:"SERVER_PORT"`
	AppURL                 string `mapstructure:"APP_URL"`
	StripeSecretKey        string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeVerifiedPriceID  string `mapstructure:"STRIPE_VERIFIED_PRICE_ID"`
	StripeWebhookSecret    string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	SupabaseURL            string `mapstructure:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `mapstructure:"SUPABASE_SERVICE_ROLE_KEY"`
}

// StripeConfigured reports whether the credentials needed to open a
// checkout session are present.
func (c Config) StripeConfigured() bool {
	return c.StripeSecretKey != "" && c.StripeVerifiedPriceID != ""
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8090")
	viper.SetDefault("APP_URL", "https://swarmspace.dev")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind env vars explicitly
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("APP_URL")
	_ = viper.BindEnv("STRIPE_SECRET_KEY")
	_ = viper.BindEnv("STRIPE_VERIFIED_PRICE_ID")
	_ = viper.BindEnv("STRIPE_WEBHOOK_SECRET")
	_ = viper.BindEnv("SUPABASE_URL")
	_ = viper.BindEnv("SUPABASE_SERVICE_ROLE_KEY")

	// Read the config file if it exists.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Error reading config file: %s", err)
		}
		err = nil
	}

	// Unmarshal the config into the Config struct.
	if err = viper.Unmarshal(&config); err != nil {
		return config, err
	}

	return
}
