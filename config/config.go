package config

import (
	"github.com/jinzhu/configor"
)

type Config struct {
	AppConfig AppConfig `env:"APPCONFIG"`
	AWSConfig AWSConfig `env:"AWSCONFIG"`
}

type AppConfig struct {
	APPName        string `default:"blindmail"`
	Port           string `default:"8080" env:"PORT"`
	AllowedOrigins string `default:"*" env:"ALLOWED_ORIGINS"`
}

type AWSConfig struct {
	Region       string `env:"AWS_REGION" default:"ap-southeast-1"`
	S3BucketName string `env:"S3_BUCKET_NAME"`
}

// LoadConfigOrPanic loads config from config/config.dev.json, overridable by
// environment variables.
func LoadConfigOrPanic() Config {
	var config = Config{}
	configor.Load(&config, "config/config.dev.json")
	return config
}
