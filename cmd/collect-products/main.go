package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/eskrenkovic/madshus-catalog-go/internal/config"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog/commands"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/core"
	"github.com/eskrenkovic/madshus-catalog-go/internal/pipeline"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	rootPath := flag.String("root", ".", "directory holding config.env and db/migrations")
	region := flag.String("region", "", "region to collect for, defaults to the configured region")
	locale := flag.String("locale", "", "locale to collect with, defaults to the configured locale")
	limit := flag.Int("limit", 0, "maximum number of products to collect, 0 collects everything")
	flag.Parse()

	if _, err := os.Stat(path.Join(*rootPath, "config.env")); err == nil {
		if err := godotenv.Load(path.Join(*rootPath, "config.env")); err != nil {
			log.Fatal(err)
		}
	}

	config, err := config.Load(*rootPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := core.WithRunID(context.Background(), uuid.NewString())

	p, err := pipeline.Bootstrap(ctx, config)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = p.Close()
	}()

	command := commands.CollectProductsCommand{
		Region: config.Region,
		Locale: config.Locale,
		Limit:  *limit,
	}

	if *region != "" {
		command.Region = *region
	}

	if *locale != "" {
		command.Locale = *locale
	}

	response, err := mediator.Send[commands.CollectProductsCommand, commands.CollectProductsResponse](ctx, command)
	if err != nil {
		config.Logger.Fatal("collection run failed", zap.Error(err))
	}

	config.Logger.Info(
		"collection run finished",
		zap.Int("collected", response.Collected),
		zap.Int("failed", len(response.Failures)),
	)

	for _, failure := range response.Failures {
		config.Logger.Warn(
			"product not collected",
			zap.String("uid", failure.UID),
			zap.String("url", failure.URL),
			zap.String("reason", failure.Reason),
		)
	}

	if len(response.Failures) > 0 {
		os.Exit(1)
	}
}
