/**
 * @description
 * This file handles the configuration management for the card-webhook-service.
 * It uses the Viper library to provide a robust way of reading settings from
 * environment variables or a local .env file.
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
// It is built once at startup and passed into the components that need it.
type Config struct {
	ServerPort            string `mapstructure:"SERVER_PORT"`
	CardsBaseURL          string `mapstructure:"CARDS_BASE_URL"`
	CardsAPIKey           string `mapstructure:"CARDS_API_KEY"`
	ForwardTimeoutSeconds int    `mapstructure:"FORWARD_TIMEOUT_SECONDS"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind env vars explicitly
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("CARDS_BASE_URL")
	_ = viper.BindEnv("CARDS_API_KEY")
	_ = viper.BindEnv("FORWARD_TIMEOUT_SECONDS")

	viper.SetDefault("SERVER_PORT", "8082")
	viper.SetDefault("CARDS_BASE_URL", "http://localhost:3001/api/v1/cards")
	viper.SetDefault("FORWARD_TIMEOUT_SECONDS", 30)

	// Read the config file if it exists.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file: %s", err)
		}
		err = nil
	}

	// Unmarshal the config into the Config struct.
	if err = viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode config into struct: %v", err)
	}

	return
}
