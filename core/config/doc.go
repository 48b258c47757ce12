// Package config assembles the application configuration.
//
// Configuration is sourced from environment variables, optionally
// seeded by a .env file. Defaults come from 'default' struct tags on
// the partial config structs owned by core/server, core/storage,
// core/logger, and core/database; viper binds the nested keys so
// SERVER_PORT maps to server.port and so on.
package config
