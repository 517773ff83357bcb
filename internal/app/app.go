// Package app assembles the comparison pipeline from configuration. It is
// shared by the HTTP server and the command-line tools.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"docverify/internal/comparison"
	"docverify/internal/config"
	"docverify/internal/document"
	"docverify/internal/extraction"
	"docverify/internal/normalizer"
	"docverify/internal/port"
	"docverify/internal/repository/postgres"
	"docverify/internal/service"
	s3storage "docverify/internal/storage/s3"
	"docverify/internal/template"
	"docverify/internal/templatestore"
)

// App holds the wired pipeline components.
type App struct {
	Config    *config.Config
	Templates *template.Registry
	Resolver  *document.Resolver
	Service   service.ComparisonService

	db *sqlx.DB
}

// Options adjust how New wires the pipeline.
type Options struct {
	// UnrestrictedPaths disables the documents.base_dir confinement of local
	// document paths.
	UnrestrictedPaths bool
}

// New builds the template store selected by cfg.Templates.Source, the strategy
// registries, the document resolver and the comparison service.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{Config: cfg}

	storage, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	store, err := a.templateStore(cfg, storage)
	if err != nil {
		a.Close()
		return nil, err
	}

	extractors := extraction.DefaultRegistry()
	comparators := comparison.DefaultRegistry(cfg.Comparison.FuzzyMatchThreshold)

	var registryOpts []template.Option
	if cfg.Templates.ValidateStrategies {
		registryOpts = append(registryOpts, template.WithStrategyCheck(extractors, comparators))
	}
	a.Templates = template.NewRegistry(store, normalizer.DefaultTable(), registryOpts...)

	baseDir := cfg.Documents.BaseDir
	if opts.UnrestrictedPaths {
		baseDir = ""
	}
	a.Resolver = document.NewResolver(
		document.DefaultRegistry(cfg.Documents.Readability),
		storage,
		baseDir,
		cfg.Documents.MaxFileSize(),
	)

	a.Service = service.NewComparisonService(a.Templates, a.Resolver, extractors, comparators, cfg.Comparison)
	log.Printf("app.New: templates from %s, default template %q", cfg.Templates.Source, cfg.Comparison.DefaultTemplateID)
	return a, nil
}

func (a *App) templateStore(cfg *config.Config, storage port.ObjectStorage) (port.TemplateStore, error) {
	switch cfg.Templates.Source {
	case config.TemplateSourceDir:
		return templatestore.NewDirStore(cfg.Templates.Directory), nil
	case config.TemplateSourceS3:
		return templatestore.NewS3Store(storage, cfg.S3.Bucket, cfg.Templates.S3Prefix), nil
	case config.TemplateSourcePostgres:
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		return postgres.NewTemplateRepo(db), nil
	default:
		return templatestore.NewFSStore(template.Builtin()), nil
	}
}

// Close releases the database pool, if one was opened.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
