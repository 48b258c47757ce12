package config

import (
	"reflect"
	"strings"

	"scene-manager/core/database"
	"scene-manager/core/logger"
	"scene-manager/core/server"
	"scene-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, divided into
// partial configurations owned by their packages.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (S3/MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the catalog database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and an
// optional .env file in the given directory.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}
	// Missing .env is fine (production).
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Walk the struct tags to register defaults for every key.
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (SERVER_PORT -> server.port).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues recurses over the struct and sets defaults in Viper from
// the 'default' and 'mapstructure' tags. Registering every key (even
// with an empty default) is what makes AutomaticEnv pick it up.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
