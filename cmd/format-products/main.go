package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"

	"github.com/eskrenkovic/madshus-catalog-go/internal/config"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog/queries"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/core"
	"github.com/eskrenkovic/madshus-catalog-go/internal/pipeline"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type uidListFlag []string

func (f *uidListFlag) String() string {
	return fmt.Sprint(*f)
}

func (f *uidListFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	rootPath := flag.String("root", ".", "directory holding config.env and db/migrations")
	var uids uidListFlag
	flag.Var(&uids, "uid", "format only the product with this uid, repeatable")
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

	query := queries.GetFormattedProductsQuery{UIDs: uids}

	formatted, err := mediator.Send[queries.GetFormattedProductsQuery, []catalog.FormattedProduct](ctx, query)
	if err != nil {
		config.Logger.Fatal("formatting run failed", zap.Error(err))
	}

	config.Logger.Info("formatted products", zap.Int("count", len(formatted)))

	for i, product := range formatted {
		if i > 0 {
			fmt.Println("\n---\n")
		}
		fmt.Println(product.Text)
	}
}
