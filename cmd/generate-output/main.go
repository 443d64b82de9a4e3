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
	output := flag.String("output", "", "output file path, defaults to the configured one")
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

	command := commands.GenerateOutputCommand{OutputPath: config.OutputPath}
	if *output != "" {
		command.OutputPath = *output
	}

	response, err := mediator.Send[commands.GenerateOutputCommand, commands.GenerateOutputResponse](ctx, command)
	if err != nil {
		config.Logger.Fatal("output generation failed", zap.Error(err))
	}

	config.Logger.Info(
		"output generated",
		zap.String("path", response.Path),
		zap.Int("products", response.Products),
	)
}
