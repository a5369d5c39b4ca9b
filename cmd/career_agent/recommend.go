package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-advisor/internal/observability"
	"github.com/jonathan/career-advisor/internal/ranking"
	"github.com/jonathan/career-advisor/internal/schemas"
	"github.com/jonathan/career-advisor/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend careers for a user profile",
	Long: "Scores a user profile (JSON) against the configured career catalog and prints the best matches " +
		"with their compatibility score and explanation.",
	RunE: runRecommend,
}

var (
	recommendProfile string
	recommendJSON    bool
	recommendVerbose bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendProfile, "profile", "p", "", "Path to the profile JSON file, or - for stdin (required)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print recommendations as JSON")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Show the profile, catalog and per-rule score breakdown")

	if err := recommendCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	profile, err := readProfile(cmd.InOrStdin(), recommendProfile)
	if err != nil {
		return err
	}

	snapshot := loadCatalog(cmd.Context(), cfg, log)
	recs := ranking.Recommend(profile, snapshot.Careers(), cfg.TopN)

	out := cmd.OutOrStdout()
	if recommendJSON {
		return printJSON(out, map[string]any{
			"catalog":         snapshot.Info(),
			"recommendations": recs,
		})
	}

	var printer *observability.Printer
	if recommendVerbose {
		printer = observability.NewPrinter(out)
		printer.PrintProfile(profile)
		printer.PrintCatalogInfo(snapshot.Info())
	}

	if snapshot.Fallback {
		_, _ = fmt.Fprintln(out, "Note: using the built-in fallback catalog.")
	}
	for i, rec := range recs {
		_, _ = fmt.Fprintf(out, "%d. %s (%s) %.1f%%\n", i+1, rec.Career.Title, rec.Career.ID, rec.Score*100)
		for _, s := range rec.Explanation.Strengths {
			_, _ = fmt.Fprintf(out, "   + %s\n", s)
		}
		for _, c := range rec.Explanation.Considerations {
			_, _ = fmt.Fprintf(out, "   - %s\n", c)
		}
		if printer != nil {
			printer.PrintBreakdown(i+1, rec)
		}
	}
	return nil
}

// readProfile reads a profile document from path ("-" is stdin), checks it against the
// profile schema and builds the UserProfile.
func readProfile(stdin io.Reader, path string) (*types.UserProfile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	if err := schemas.Validate(schemas.Profile, data); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}

	return types.ProfileFromMap(raw)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
