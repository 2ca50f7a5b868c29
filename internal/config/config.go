package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Rabbit RabbitConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RabbitConfig struct {
	URI      string
	Exchange string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment, with a .env file honoured
// when present. Every key has a default except MONGO_URI.
func Load() (*Config, error) {
	// .env is optional; system env always wins.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "6680")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("MONGO_DATABASE", "sprint_service")
	v.SetDefault("RABBITMQ_URI", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Mode: v.GetString("GIN_MODE"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Rabbit: RabbitConfig{
			URI:      v.GetString("RABBITMQ_URI"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, ErrMissingMongoURI
	}
	return cfg, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
