package cli

import (
	"fmt"

	"commerce/internal/database"
	"commerce/internal/repository"
	"commerce/internal/seed"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo users, listings and bids",
		Long: `Creates the default categories, a handful of users (password "` + seed.DemoPassword + `"),
and listings with a few bids each. The schema is migrated first.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(rootOpts.Config)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}

			repo := repository.NewGormRepo(db, rootOpts.Config.BidRetryAttempts)
			sum, err := seed.NewSeeder(repo, bcrypt.DefaultCost).Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d categories, %d listings, %d bids (%d closed)\n",
				sum.Users, sum.Categories, sum.Listings, sum.Bids, sum.Closed)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	cmd.Flags().IntVar(&opts.Listings, "listings", opts.Listings, "number of listings to create")
	cmd.Flags().IntVar(&opts.BidsPerListing, "bids", opts.BidsPerListing, "maximum bids per listing")
	cmd.Flags().IntVar(&opts.Closed, "closed", opts.Closed, "number of listings to close after bidding")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for reproducible data (0 uses the clock)")

	return cmd
}
