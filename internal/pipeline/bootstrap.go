package pipeline

import (
	"context"
	"database/sql"

	"github.com/eskrenkovic/madshus-catalog-go/internal/config"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog/commands"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog/queries"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/core"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/madshus"
	sqlmigration "github.com/eskrenkovic/madshus-catalog-go/internal/sql-migrations"

	"github.com/eskrenkovic/mediator-go"
)

// Pipeline acts as the composition root for the catalog CLI commands.
type Pipeline struct {
	db *sql.DB
}

// Bootstrap opens the database, applies pending migrations, and
// registers the pipeline behaviors and every request handler with the
// mediator.
func Bootstrap(ctx context.Context, config config.Config) (*Pipeline, error) {
	db, err := core.OpenDatabase(config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := sqlmigration.Run(ctx, db, config.MigrationsPath); err != nil {
		return nil, err
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	client := madshus.NewClient(config.GraphQLURL)
	repository := catalog.NewProductRepository(db)

	// handler registration

	collectProductsHandler := commands.NewCollectProductsCommandHandler(client, repository, config.Logger)
	err = mediator.RegisterRequestHandler[commands.CollectProductsCommand, commands.CollectProductsResponse](
		collectProductsHandler,
	)
	if err != nil {
		return nil, err
	}

	generateOutputHandler := commands.NewGenerateOutputCommandHandler(repository)
	err = mediator.RegisterRequestHandler[commands.GenerateOutputCommand, commands.GenerateOutputResponse](
		generateOutputHandler,
	)
	if err != nil {
		return nil, err
	}

	getFormattedProductsHandler := queries.NewGetFormattedProductsQueryHandler(repository)
	err = mediator.RegisterRequestHandler[queries.GetFormattedProductsQuery, []catalog.FormattedProduct](
		getFormattedProductsHandler,
	)
	if err != nil {
		return nil, err
	}

	return &Pipeline{db: db}, nil
}

// Close releases the database connection pool.
func (p *Pipeline) Close() error {
	return p.db.Close()
}
