package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/garyjia/election-finance/internal/archive"
	"github.com/garyjia/election-finance/internal/batch"
	"github.com/garyjia/election-finance/internal/config"
	"github.com/garyjia/election-finance/internal/storage"
	"github.com/garyjia/election-finance/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	// .env is optional
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	flags := ff.NewFlagSet("ef-extract")
	var (
		configPath = flags.StringLong("config", "", "YAML configuration file")
		formatName = flags.StringLong("format", "", "report format: tokyo or wakayama")
		batchName  = flags.StringLong("name", "", "output folder name (default: derived from the inputs)")
		outputDir  = flags.StringLong("output", "", "root folder for JSON documents (overrides output.dir)")
		archiveDB  = flags.StringLong("archive", "", "also store combined items in this SQLite file")
		stableIDs  = flags.BoolLong("stable-ids", "derive data_id from the batch and item content")
	)

	if err := ff.Parse(flags, args, ff.WithEnvVarPrefix("EF_EXTRACT")); err != nil {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(flags))
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, *formatName, *batchName, *outputDir, *archiveDB, *stableIDs, flags.GetArgs())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	opts := []batch.Option{batch.WithStableIDs(cfg.Output.StableIDs)}
	if cfg.Archive.Enabled {
		repo, err := archive.Open(ctx, cfg.Archive.Path, logger)
		if err != nil {
			logger.Error("Failed to open archive", zap.String("path", cfg.Archive.Path), zap.Error(err))
			return err
		}
		defer repo.Close()
		opts = append(opts, batch.WithArchive(repo))
	}

	runner := batch.NewRunner(
		storage.NewFolderManager(cfg.Output.Dir, logger),
		storage.NewLocalFileStorage(cfg.Output.Dir, logger),
		logger,
		opts...,
	)

	req := batch.Request{Format: cfg.Batch.Format, Name: cfg.Batch.Name}
	for _, s := range cfg.Batch.Submissions {
		req.Submissions = append(req.Submissions, batch.Submission{Number: s.Number, Path: s.Path})
	}

	_, err = runner.Run(ctx, req)
	return err
}

// applyFlags lets command-line values override the configuration.
// Positional workbooks replace the configured submissions, numbered in order.
func applyFlags(cfg *config.Config, formatName, batchName, outputDir, archiveDB string, stableIDs bool, paths []string) {
	if formatName != "" {
		cfg.Batch.Format = formatName
	}
	if batchName != "" {
		cfg.Batch.Name = batchName
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if archiveDB != "" {
		cfg.Archive.Enabled = true
		cfg.Archive.Path = archiveDB
	}
	if stableIDs {
		cfg.Output.StableIDs = true
	}
	if len(paths) > 0 {
		cfg.Batch.Submissions = make([]config.SubmissionConfig, len(paths))
		for i, p := range paths {
			cfg.Batch.Submissions[i] = config.SubmissionConfig{Number: i + 1, Path: p}
		}
	}
}
