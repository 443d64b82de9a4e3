package config

import (
	"fmt"
	"path"

	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/env"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DatabaseURLEnv    = "MADSHUS_DATABASE_URL"
	GraphQLURLEnv     = "MADSHUS_GRAPHQL_URL"
	DefaultRegionEnv  = "MADSHUS_DEFAULT_REGION"
	DefaultLocaleEnv  = "MADSHUS_DEFAULT_LOCALE"
	OutputDirEnv      = "MADSHUS_OUTPUT_DIR"
	LogLevelEnv       = "MADSHUS_LOG_LEVEL"
	MigrationsPathEnv = "MADSHUS_MIGRATIONS_PATH"
)

type Config struct {
	Logger *zap.Logger

	DatabaseURL    string
	GraphQLURL     string
	Region         string
	Locale         string
	OutputPath     string
	MigrationsPath string
}

// Load builds the process configuration from environment variables.
// Every variable has a default, so Load succeeds in an empty
// environment.
func Load(rootPath string) (Config, error) {
	level, err := zapcore.ParseLevel(env.GetString(LogLevelEnv, "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse log level: %w", err)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := loggerConfig.Build()
	if err != nil {
		return Config{}, fmt.Errorf("build logger: %w", err)
	}

	outputDir := env.GetString(OutputDirEnv, "output")

	return Config{
		Logger:         logger,
		DatabaseURL:    env.GetString(DatabaseURLEnv, "madshus_products.db"),
		GraphQLURL:     env.GetString(GraphQLURLEnv, "https://madshus.com/api/graphql"),
		Region:         env.GetString(DefaultRegionEnv, "no"),
		Locale:         env.GetString(DefaultLocaleEnv, "en-us"),
		OutputPath:     path.Join(outputDir, "products.txt"),
		MigrationsPath: env.GetString(MigrationsPathEnv, path.Join(rootPath, "db", "migrations")),
	}, nil
}
