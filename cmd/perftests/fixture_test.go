package perftests

import (
	"context"
	"io"
	"testing"

	auction "commerce/internal/auctionService"
	"commerce/internal/database"
	"commerce/internal/models"
	"commerce/internal/repository"
	"commerce/utils"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// fixture is a migrated in-memory store with one seller and a pool of bidders
type fixture struct {
	repo     *repository.GormRepo
	svc      *auction.AuctionService
	sellerID string
	bidders  []string
	listings []string
}

func newFixture(b *testing.B, numBidders, numListings int, startingBid int64) *fixture {
	b.Helper()
	utils.SetOutput(io.Discard)
	gofakeit.Seed(1)

	db, err := database.OpenSQLiteMemory()
	if err != nil {
		b.Fatalf("failed to open database: %v", err)
	}
	b.Cleanup(func() { _ = database.Close(db) })

	repo := repository.NewGormRepo(db, 10)
	f := &fixture{repo: repo, svc: auction.NewAuctionService(repo)}
	ctx := context.Background()

	f.sellerID = f.addUser(b, ctx)
	for i := 0; i < numBidders; i++ {
		f.bidders = append(f.bidders, f.addUser(b, ctx))
	}
	for i := 0; i < numListings; i++ {
		f.addListing(b, ctx, startingBid)
	}
	return f
}

// addUser stores a user directly; hashing is not what these benchmarks measure
func (f *fixture) addUser(b *testing.B, ctx context.Context) string {
	b.Helper()
	user := &models.User{
		ID:           utils.GenerateID(),
		Username:     gofakeit.Username() + "_" + gofakeit.UUID(),
		Email:        gofakeit.Email(),
		PasswordHash: "benchmark",
	}
	if err := f.repo.CreateUser(ctx, user); err != nil {
		b.Fatalf("failed to create user: %v", err)
	}
	return user.ID
}

func (f *fixture) addListing(b *testing.B, ctx context.Context, startingBid int64) string {
	b.Helper()
	listing, err := f.svc.CreateListing(ctx, auction.CreateListingInput{
		OwnerID:     f.sellerID,
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		StartingBid: decimal.NewFromInt(startingBid),
	})
	if err != nil {
		b.Fatalf("failed to create listing: %v", err)
	}
	f.listings = append(f.listings, listing.ID)
	return listing.ID
}
