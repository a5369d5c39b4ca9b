package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-advisor/internal/ranking"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List careers with the strongest market outlook",
	Long:  "Lists careers ordered by job market demand, then growth potential. No profile is needed.",
	RunE:  runTrending,
}

var trendingJSON bool

func init() {
	trendingCmd.Flags().BoolVar(&trendingJSON, "json", false, "Print careers as JSON")
	rootCmd.AddCommand(trendingCmd)
}

func runTrending(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	snapshot := loadCatalog(cmd.Context(), cfg, log)
	careers := ranking.Trending(snapshot.Careers(), cfg.TopN)

	out := cmd.OutOrStdout()
	if trendingJSON {
		return printJSON(out, careers)
	}
	for i, c := range careers {
		_, _ = fmt.Fprintf(out, "%d. %s (%s) demand %d/10, growth %d/10\n",
			i+1, c.Title, c.ID, c.JobMarketDemand, c.GrowthPotential)
	}
	return nil
}
