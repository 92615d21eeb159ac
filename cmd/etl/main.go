// Package main is the entry point for the ETL pipeline.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/denimalpaca/pudl/internal/config"
	"github.com/denimalpaca/pudl/internal/database"
	"github.com/denimalpaca/pudl/internal/datastore"
	"github.com/denimalpaca/pudl/internal/etl"
	"github.com/denimalpaca/pudl/internal/settings"
)

func main() {
	cfg := config.Load()

	settingsPath := flag.String("settings", cfg.SettingsPath, "path to the datasets settings file")
	migrateOnly := flag.Bool("migrate-only", false, "apply schema migrations and exit")
	flag.Parse()

	ctx := context.Background()

	// Initialize database connection
	db, err := database.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	if *migrateOnly {
		log.Println("migrations applied")
		return
	}

	// Validate the run settings before touching any data
	s, err := settings.LoadFile(*settingsPath)
	if err != nil {
		log.Fatalf("invalid settings: %v", err)
	}
	log.Printf("datasets requested: %v", s.Active())

	ds, err := openDatastore(cfg)
	if err != nil {
		log.Fatalf("failed to open datastore: %v", err)
	}
	if err := ds.Ping(ctx); err != nil {
		log.Fatalf("datastore unreachable: %v", err)
	}

	runner := etl.NewRunner(db, ds)
	report, err := runner.Run(ctx, s)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	for _, d := range report.Datasets {
		log.Printf("%s: %d partitions, %d rows, %d bytes",
			d.Name, d.Partitions, d.RowsLoaded, d.BytesRead)
	}
}

// openDatastore builds the raw datastore from MINIO_* settings, falling
// back to a local filesystem store for development.
func openDatastore(cfg *config.Config) (*datastore.Datastore, error) {
	if cfg.MinioEndpoint != "" && cfg.MinioAccessKey != "" && cfg.MinioSecretKey != "" {
		client, err := datastore.NewS3Client(datastore.S3Options{
			EndpointURL:     cfg.MinioEndpoint,
			Region:          cfg.MinioRegion,
			UseSSL:          cfg.MinioUseSSL,
			AccessKeyID:     cfg.MinioAccessKey,
			SecretAccessKey: cfg.MinioSecretKey,
		})
		if err != nil {
			return nil, err
		}
		return datastore.New(client, cfg.Bucket, cfg.BasePrefix), nil
	}
	log.Println("MINIO_* not configured; using local datastore")
	return datastore.New(datastore.NewLocalStore(cfg.LocalRoot), cfg.Bucket, cfg.BasePrefix), nil
}
