package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/observability"
	"github.com/jonathan/career-roadmap/internal/types"
)

var (
	genSkills    []string
	genAnswers   []string
	genSummary   string
	genEducation string
	genNoExport  bool
	genJSON      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate roadmaps for one profile",
	Long: `Runs skill resolution, career matching and roadmap synthesis for a single profile and prints the result.

Quiz answers are letters A-D and may be repeated or comma separated:
  roadmap_agent generate --skills sql,python --answer A,C --answer B`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSliceVarP(&genSkills, "skills", "s", nil, "Skills the profile already has")
	generateCmd.Flags().StringSliceVarP(&genAnswers, "answer", "a", nil, "Quiz answers (A, B, C or D)")
	generateCmd.Flags().StringVar(&genSummary, "summary", "", "Free-text profile summary")
	generateCmd.Flags().StringVar(&genEducation, "education", "", "Highest education level")
	generateCmd.Flags().BoolVar(&genNoExport, "no-export", false, "Skip writing JSON and diagrams")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Print raw JSON instead of the formatted summary")
	rootCmd.AddCommand(generateCmd)
}

// parseAnswers turns answer flags into quiz answers. Empty entries are dropped.
func parseAnswers(values []string) []types.QuizAnswer {
	answers := make([]types.QuizAnswer, 0, len(values))
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		answers = append(answers, types.QuizAnswer{Type: v})
	}
	return answers
}

func buildRequest() (types.GenerateRequest, error) {
	req := types.GenerateRequest{
		Skills:    genSkills,
		Answers:   parseAnswers(genAnswers),
		Education: genEducation,
		Summary:   genSummary,
	}
	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("invalid profile: %w", err)
	}
	return req, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	req, err := buildRequest()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	out, err := a.pipeline.Generate(ctx, req, nil)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	w := cmd.OutOrStdout()
	if genJSON {
		return writeJSON(w, out)
	}

	p := observability.NewPrinter(w)
	p.PrintOutput(out)
	p.PrintRoadmaps(out)

	if genNoExport {
		return nil
	}
	res, err := a.exporter.Export(ctx, out)
	if res != nil {
		p.PrintExport(res)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
