package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var buildIndexRebuild bool

var buildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Build the semantic skill index",
	Long:  `Embeds the corpus vocabulary and persists it at index.path. An existing index built for the same vocabulary and embedder is reused unless --rebuild is given.`,
	RunE:  runBuildIndex,
}

func init() {
	buildIndexCmd.Flags().BoolVar(&buildIndexRebuild, "rebuild", false, "Discard any existing index first")
	rootCmd.AddCommand(buildIndexCmd)
}

func runBuildIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if buildIndexRebuild {
		if err := os.Remove(cfg.Index.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove index %s: %w", cfg.Index.Path, err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	idx, err := a.index.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Index ready: %d tokens at %s\n", idx.Len(), cfg.Index.Path)
	return nil
}
