package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/francescabuggio/ecocart/internal/store"
	"github.com/francescabuggio/ecocart/internal/survey"
)

var (
	seedCount   int
	seedProfile string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fabricated responses for pipeline testing",
	Long: `Insert fabricated responses into the store.

Seeded records are complete, plausible documents so the results and
export commands can be exercised before real participants arrive.

Profiles:
  random     spread across all conditions and both delivery choices
  controllo  administrative control condition only
  cc-heavy   every record picked Click & Collect`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 20, "number of responses to insert")
	seedCmd.Flags().StringVarP(&seedProfile, "profile", "p", "random", "seed profile (random, controllo, cc-heavy)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedCount < 1 {
		return fmt.Errorf("invalid count: must be at least 1")
	}

	profile := survey.Profile(seedProfile)
	switch profile {
	case survey.ProfileRandom, survey.ProfileControl, survey.ProfileCCHeavy:
	default:
		return fmt.Errorf("invalid profile: must be 'random', 'controllo' or 'cc-heavy'")
	}

	ctx := cmd.Context()
	return withStore(ctx, func(s *store.Store) error {
		inserted := 0
		for _, rec := range survey.Sample(seedCount, profile) {
			saved, err := s.SaveResponse(ctx, rec)
			if err != nil {
				return fmt.Errorf("failed to save response: %w", err)
			}
			if saved {
				inserted++
			}
		}

		fmt.Printf("Inserted %d responses (profile: %s)\n", inserted, profile)
		return nil
	})
}
