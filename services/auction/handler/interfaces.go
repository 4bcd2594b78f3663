package handler

import (
	"context"

	auction "commerce/internal/auctionService"
	listings "commerce/internal/listingService"
	"commerce/internal/models"
	users "commerce/internal/userService"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mock_handler.go -package=handler

type AuctionServiceInterface interface {
	CreateListing(ctx context.Context, in auction.CreateListingInput) (models.Listing, error)
	PlaceBid(ctx context.Context, listingID, bidderID string, amount decimal.Decimal) (auction.PlaceBidResult, error)
	CloseListing(ctx context.Context, listingID, requesterID string) (models.Listing, error)
	GetBidsForListing(ctx context.Context, listingID string) ([]models.Bid, error)
	GetWinningBid(ctx context.Context, listingID string) (models.Bid, error)
	AddComment(ctx context.Context, listingID, commenterID, content string) (models.Comment, error)
	GetComments(ctx context.Context, listingID string) ([]models.Comment, error)
}

type ListingQueryInterface interface {
	ActiveListings(ctx context.Context) ([]models.Listing, error)
	ListingsByCategory(ctx context.Context, categoryID string) ([]models.Listing, error)
	ListingsByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
	ListingsBidOnBy(ctx context.Context, userID string) ([]models.Listing, error)
	ListingDetail(ctx context.Context, listingID, viewerID string) (listings.ListingDetail, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

type WatchlistServiceInterface interface {
	ToggleWatch(ctx context.Context, userID, listingID string) (bool, error)
	ListWatched(ctx context.Context, userID string) ([]models.Listing, error)
	IsWatching(ctx context.Context, userID, listingID string) (bool, error)
}

type UserServiceInterface interface {
	Register(ctx context.Context, in users.RegisterInput) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
}
