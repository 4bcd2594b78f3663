package seed

import (
	"context"
	"io"
	"testing"

	"commerce/internal/database"
	"commerce/internal/models"
	"commerce/internal/repository"
	"commerce/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSeedRepo(t *testing.T) *repository.GormRepo {
	t.Helper()
	utils.SetOutput(io.Discard)
	db, err := database.OpenSQLiteMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return repository.NewGormRepo(db, 5)
}

func TestRun(t *testing.T) {
	repo := newSeedRepo(t)
	ctx := context.Background()

	opts := Options{Users: 4, Listings: 6, BidsPerListing: 4, Closed: 2, Seed: 42}
	sum, err := NewSeeder(repo, bcrypt.MinCost).Run(ctx, opts)
	require.NoError(t, err)

	require.Equal(t, 4, sum.Users)
	require.Equal(t, len(DefaultCategories), sum.Categories)
	require.Equal(t, 6, sum.Listings)
	require.Equal(t, 2, sum.Closed)

	all, err := repo.FindListings(ctx, repository.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 6)

	active, err := repo.FindListings(ctx, repository.ListingFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 4)

	bidTotal := 0
	for _, listing := range all {
		require.NotNil(t, listing.CategoryID)
		bids, err := repo.GetBidsByListing(ctx, listing.ID)
		require.NoError(t, err)
		require.Equal(t, listing.BidCount, len(bids))
		bidTotal += len(bids)

		for i, bid := range bids {
			require.NotEqual(t, listing.OwnerID, bid.BidderID)
			if i > 0 {
				require.True(t, bid.Amount.GreaterThan(bids[i-1].Amount))
			}
		}
		if len(bids) > 0 {
			require.True(t, listing.CurrentPrice.Equal(bids[len(bids)-1].Amount))
		}
	}
	require.Equal(t, sum.Bids, bidTotal)
}

func TestRunIsRepeatable(t *testing.T) {
	repo := newSeedRepo(t)
	ctx := context.Background()
	seeder := NewSeeder(repo, bcrypt.MinCost)

	_, err := seeder.Run(ctx, Options{Users: 2, Listings: 1})
	require.NoError(t, err)

	// second run reuses the existing categories
	sum, err := seeder.Run(ctx, Options{Users: 2, Listings: 1})
	require.NoError(t, err)
	require.Equal(t, 0, sum.Categories)

	var categories []models.Category
	require.NoError(t, repo.DB().Find(&categories).Error)
	require.Len(t, categories, len(DefaultCategories))

	var userCount int64
	require.NoError(t, repo.DB().Model(&models.User{}).Count(&userCount).Error)
	require.EqualValues(t, 4, userCount)
}

func TestRunNeedsTwoUsers(t *testing.T) {
	repo := newSeedRepo(t)

	_, err := NewSeeder(repo, bcrypt.MinCost).Run(context.Background(), Options{Users: 1, Listings: 3})
	require.Error(t, err)
}

func TestTitleFitsColumn(t *testing.T) {
	for i := 0; i < 50; i++ {
		require.LessOrEqual(t, len([]rune(title())), 100)
	}
}
