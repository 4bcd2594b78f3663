// Package seed fills a database with demo users, categories, listings and
// bids. It goes through the services so every seeded row passes the same
// validation as API traffic. Intended for development only.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	auction "commerce/internal/auctionService"
	"commerce/internal/auctionerrors"
	listings "commerce/internal/listingService"
	"commerce/internal/models"
	"commerce/internal/repository"
	users "commerce/internal/userService"
	"commerce/utils"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// DefaultCategories are created before any listing
var DefaultCategories = []string{"Fashion", "Toys", "Electronics", "Home", "Other"}

// DemoPassword is the password of every seeded account
const DemoPassword = "password123"

// Options configures a seeding run
type Options struct {
	Users          int
	Listings       int
	BidsPerListing int
	// Closed is how many of the seeded listings get closed after bidding
	Closed int
	// Seed makes the generated data reproducible; zero uses the clock
	Seed int64
}

// DefaultOptions is what `commerce seed` uses without flags
func DefaultOptions() Options {
	return Options{Users: 5, Listings: 20, BidsPerListing: 3, Closed: 2}
}

// Summary counts what a run created
type Summary struct {
	Users      int
	Categories int
	Listings   int
	Bids       int
	Closed     int
}

// Seeder drives the services to create demo data
type Seeder struct {
	auction  *auction.AuctionService
	listings *listings.QueryService
	users    *users.UserService
}

// NewSeeder builds a Seeder over repo. hashCost is the bcrypt cost for seeded passwords.
func NewSeeder(repo repository.AuctionDB, hashCost int) *Seeder {
	return &Seeder{
		auction:  auction.NewAuctionService(repo),
		listings: listings.NewQueryService(repo),
		users:    users.NewUserService(repo).WithHashCost(hashCost),
	}
}

// Run seeds the database according to opts
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Users < 2 {
		return Summary{}, errors.New("seed: at least two users are needed so bids have a non-owner bidder")
	}
	if opts.Closed > opts.Listings {
		opts.Closed = opts.Listings
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)

	var sum Summary

	categories, created, err := s.ensureCategories(ctx)
	if err != nil {
		return sum, err
	}
	sum.Categories = created

	accounts := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := s.createUser(ctx)
		if err != nil {
			return sum, err
		}
		accounts = append(accounts, user)
	}
	sum.Users = len(accounts)

	for i := 0; i < opts.Listings; i++ {
		owner := accounts[gofakeit.Number(0, len(accounts)-1)]
		category := categories[gofakeit.Number(0, len(categories)-1)]

		listing, err := s.auction.CreateListing(ctx, auction.CreateListingInput{
			OwnerID:     owner.ID,
			Title:       title(),
			Description: gofakeit.Paragraph(1, 3, 8, "\n"),
			StartingBid: decimal.NewFromFloat(gofakeit.Price(5, 500)).Round(2),
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/640/480", gofakeit.UUID()),
			CategoryID:  category.ID,
		})
		if err != nil {
			return sum, fmt.Errorf("seed: create listing: %w", err)
		}
		sum.Listings++

		bids, err := s.placeBids(ctx, listing, accounts, gofakeit.Number(0, opts.BidsPerListing))
		if err != nil {
			return sum, err
		}
		sum.Bids += bids

		if i < opts.Closed {
			if _, err := s.auction.CloseListing(ctx, listing.ID, owner.ID); err != nil {
				return sum, fmt.Errorf("seed: close listing %s: %w", listing.ID, err)
			}
			sum.Closed++
		}
	}

	utils.Info("database seeded", map[string]any{
		"users":      sum.Users,
		"categories": sum.Categories,
		"listings":   sum.Listings,
		"bids":       sum.Bids,
		"closed":     sum.Closed,
		"seed":       seed,
	})

	return sum, nil
}

// ensureCategories creates the default categories, tolerating ones that already exist
func (s *Seeder) ensureCategories(ctx context.Context) ([]models.Category, int, error) {
	created := 0
	for _, name := range DefaultCategories {
		_, err := s.listings.CreateCategory(ctx, name)
		switch {
		case err == nil:
			created++
		case errors.Is(err, auctionerrors.ErrCategoryExists):
		default:
			return nil, created, fmt.Errorf("seed: create category %q: %w", name, err)
		}
	}

	categories, err := s.listings.Categories(ctx)
	if err != nil {
		return nil, created, fmt.Errorf("seed: list categories: %w", err)
	}
	return categories, created, nil
}

func (s *Seeder) createUser(ctx context.Context) (models.User, error) {
	var lastErr error
	for attempt := 0; attempt < 5; attempt++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 9999))
		user, err := s.users.Register(ctx, users.RegisterInput{
			Username:     username,
			Email:        gofakeit.Email(),
			Password:     DemoPassword,
			Confirmation: DemoPassword,
		})
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, auctionerrors.ErrUsernameTaken) {
			return models.User{}, fmt.Errorf("seed: register user: %w", err)
		}
		lastErr = err
	}
	return models.User{}, fmt.Errorf("seed: register user: %w", lastErr)
}

// placeBids places n strictly increasing bids from random non-owners
func (s *Seeder) placeBids(ctx context.Context, listing models.Listing, accounts []models.User, n int) (int, error) {
	price := listing.StartingBid
	placed := 0
	for i := 0; i < n; i++ {
		bidder := accounts[gofakeit.Number(0, len(accounts)-1)]
		if bidder.ID == listing.OwnerID {
			continue
		}

		amount := price
		if placed > 0 {
			amount = price.Add(decimal.NewFromInt(int64(gofakeit.Number(1, 25))))
		}

		res, err := s.auction.PlaceBid(ctx, listing.ID, bidder.ID, amount)
		if err != nil {
			return placed, fmt.Errorf("seed: bid on listing %s: %w", listing.ID, err)
		}
		price = res.Listing.CurrentPrice
		placed++
	}
	return placed, nil
}

func title() string {
	t := gofakeit.Sentence(4)
	if r := []rune(t); len(r) > 100 {
		t = string(r[:100])
	}
	return t
}
