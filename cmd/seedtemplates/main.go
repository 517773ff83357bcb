// Command seedtemplates publishes template definitions to the S3 or Postgres
// template store. Every definition is parsed first; nothing is written when
// any of them is invalid.
//
// Usage:
//
//	go run ./cmd/seedtemplates -to s3                  # publish the built-in definitions
//	go run ./cmd/seedtemplates -to postgres -dir ./templates
//	go run ./cmd/seedtemplates -to postgres -delete loan_contract
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"docverify/internal/config"
	"docverify/internal/port"
	"docverify/internal/repository/postgres"
	s3storage "docverify/internal/storage/s3"
	"docverify/internal/template"
	"docverify/internal/templatestore"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	to := flag.String("to", "", "target store: s3 or postgres")
	dir := flag.String("dir", "", "directory of definitions (default: built-in definitions)")
	del := flag.String("delete", "", "delete the template with this id instead of publishing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	repo, closeFn, err := openRepository(ctx, cfg, *to)
	if err != nil {
		return err
	}
	defer closeFn()

	if *del != "" {
		if err := repo.Delete(ctx, *del); err != nil {
			return fmt.Errorf("delete %s: %w", *del, err)
		}
		log.Printf("deleted template %s from %s", *del, *to)
		return nil
	}

	var fsys fs.FS = template.Builtin()
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}
	n, err := publish(ctx, templatestore.NewFSStore(fsys), repo)
	if err != nil {
		return err
	}
	log.Printf("published %d templates to %s", n, *to)
	return nil
}

func openRepository(ctx context.Context, cfg *config.Config, to string) (port.TemplateRepository, func(), error) {
	switch to {
	case config.TemplateSourceS3:
		storage, err := s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		return templatestore.NewS3Store(storage, cfg.S3.Bucket, cfg.Templates.S3Prefix), func() {}, nil
	case config.TemplateSourcePostgres:
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewTemplateRepo(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, errors.New("-to must be s3 or postgres")
	}
}

// publish validates every definition in src and then saves them all to dst.
func publish(ctx context.Context, src port.TemplateStore, dst port.TemplateRepository) (int, error) {
	ids, err := src.List(ctx)
	if err != nil {
		return 0, err
	}

	defs := make([]*port.TemplateDefinition, 0, len(ids))
	var errs []error
	for _, id := range ids {
		def, err := src.Load(ctx, id)
		if err != nil {
			return 0, err
		}
		if _, err := template.Parse(def.ID, def.Format, def.Data, nil); err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, def)
	}
	if len(errs) > 0 {
		return 0, errors.Join(errs...)
	}

	for _, def := range defs {
		if err := dst.Save(ctx, def); err != nil {
			return 0, fmt.Errorf("save %s: %w", def.ID, err)
		}
		log.Printf("seedtemplates: saved %s (%s, %d bytes)", def.ID, def.Format, len(def.Data))
	}
	return len(defs), nil
}
