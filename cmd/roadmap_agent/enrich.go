package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/enrichment"
	"github.com/jonathan/career-roadmap/internal/logger"
)

var enrichFile string

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill in descriptions, tasks and education for the careers file",
	Long:  `Rewrites the careers file with generated descriptions, tasks and education levels. The original is kept next to it with a .bak suffix and is always used as the input, so repeated runs give the same result.`,
	RunE:  runEnrich,
}

func init() {
	enrichCmd.Flags().StringVarP(&enrichFile, "file", "f", "", "Careers file to enrich (defaults to corpus_path)")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := enrichFile
	if path == "" {
		path = cfg.CorpusPath
	}

	res, err := enrichment.EnrichFile(path, logger.Component("enrichment"))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Enriched %d careers in %s (backup: %s)\n", res.Updated, res.Path, res.BackupPath)
	for _, occ := range res.Examples {
		fmt.Fprintf(w, "  %s: %s\n", occ.Name, occ.Description)
	}
	return nil
}
