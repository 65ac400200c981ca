package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/db"
	"github.com/jonathan/career-roadmap/internal/ingestion"
	"github.com/jonathan/career-roadmap/internal/logger"
)

var (
	ingestESCODir string
	ingestONETDir string
	ingestONETZip string
	ingestOut     string
	ingestToDB    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the careers corpus from ESCO and O*NET exports",
	Long: `Reads the ESCO CSV export and the O*NET text database, merges occupations that share a name and writes the careers file with a .meta.json manifest.

Missing ESCO or O*NET files contribute nothing. With --to-db the merged corpus also replaces the occupations table.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestESCODir, "esco", "", "ESCO export directory (defaults to <data_dir>/esco)")
	ingestCmd.Flags().StringVar(&ingestONETDir, "onet", "", "O*NET directory (defaults to <data_dir>/onet)")
	ingestCmd.Flags().StringVar(&ingestONETZip, "onet-zip", "", "O*NET zip archive to extract into the O*NET directory first")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Careers file to write (defaults to corpus_path)")
	ingestCmd.Flags().BoolVar(&ingestToDB, "to-db", false, "Also replace the occupations table in DATABASE_URL")
	rootCmd.AddCommand(ingestCmd)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.Component("ingestion")

	escoDir := orDefault(ingestESCODir, filepath.Join(cfg.DataDir, "esco"))
	onetDir := orDefault(ingestONETDir, filepath.Join(cfg.DataDir, "onet"))
	out := orDefault(ingestOut, cfg.CorpusPath)

	if ingestONETZip != "" {
		files, err := ingestion.ExtractZip(ingestONETZip, onetDir)
		if err != nil {
			return err
		}
		log.Info().Str("archive", ingestONETZip).Int("files", len(files)).Msg("extracted O*NET archive")
	}

	esco, err := ingestion.LoadESCO(escoDir)
	if err != nil {
		return err
	}
	onet, err := ingestion.LoadONET(onetDir)
	if err != nil {
		return err
	}

	occupations, summary := ingestion.Combine(esco, onet)
	manifest, err := ingestion.WriteCareers(out, occupations, summary, escoDir, onetDir)
	if err != nil {
		return err
	}
	log.Info().
		Int("esco", summary.ESCO).
		Int("onet", summary.ONET).
		Int("enriched", summary.Enriched).
		Int("added", summary.Added).
		Int("total", summary.Total).
		Str("path", out).
		Msg("careers file written")

	if ingestToDB {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--to-db requires database_url or DATABASE_URL")
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := store.ReplaceOccupations(ctx, occupations); err != nil {
			return err
		}
		log.Info().Int("occupations", len(occupations)).Msg("occupations table replaced")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d careers to %s (hash %s)\n", summary.Total, out, manifest.Hash)
	return nil
}
