package repository

import (
	"context"
	"errors"
	"fmt"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"

	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// BidCheck decides, inside the bid transaction, whether a bid may be accepted.
// highest is nil when the listing has no bids yet.
type BidCheck func(listing *models.Listing, highest *models.Bid) error

// ListingCheck decides, inside the close transaction, whether a listing may be closed
type ListingCheck func(listing *models.Listing) error

// ListingFilter narrows FindListings. Zero values mean "no constraint".
type ListingFilter struct {
	ActiveOnly bool
	CategoryID string
	OwnerID    string
	WatcherID  string
	BidderID   string
}

// ListingSnapshot is a listing together with what its detail page shows,
// read at one point in time. Winning is nil when there are no bids.
type ListingSnapshot struct {
	Listing  models.Listing
	Winning  *models.Bid
	Comments []models.Comment
	Watching bool
}

// UserStore persists registered users
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// CategoryStore persists listing categories
type CategoryStore interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, categoryID string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ListingStore persists listings
type ListingStore interface {
	CreateListing(ctx context.Context, listing *models.Listing) error
	GetListing(ctx context.Context, listingID string) (*models.Listing, error)
	GetListingSnapshot(ctx context.Context, listingID, viewerID string) (*ListingSnapshot, error)
	FindListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	CloseListing(ctx context.Context, listingID string, check ListingCheck) (*models.Listing, error)
}

// BidStore persists bids. RecordBid is the only write path for bids and
// updates the listing's current price in the same transaction.
type BidStore interface {
	RecordBid(ctx context.Context, bid *models.Bid, check BidCheck) (*models.Listing, error)
	GetBidsByListing(ctx context.Context, listingID string) ([]models.Bid, error)
	GetWinningBid(ctx context.Context, listingID string) (*models.Bid, error)
}

// CommentStore persists listing comments
type CommentStore interface {
	AddComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByListing(ctx context.Context, listingID string) ([]models.Comment, error)
}

// WatchlistStore persists watchlist membership
type WatchlistStore interface {
	ToggleWatch(ctx context.Context, userID, listingID string) (bool, error)
	IsWatching(ctx context.Context, userID, listingID string) (bool, error)
}

// AuctionDB defines the storage interface for the auction system
type AuctionDB interface {
	UserStore
	CategoryStore
	ListingStore
	BidStore
	CommentStore
	WatchlistStore
}

// GormRepo implements AuctionDB on top of gorm
type GormRepo struct {
	db          *gorm.DB
	maxAttempts int
}

var _ AuctionDB = (*GormRepo)(nil)

// NewGormRepo creates a repository. maxAttempts bounds how often a
// conflicting write transaction is retried before ErrBidConflict is returned.
func NewGormRepo(db *gorm.DB, maxAttempts int) *GormRepo {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &GormRepo{db: db, maxAttempts: maxAttempts}
}

// DB exposes the underlying handle for health checks
func (r *GormRepo) DB() *gorm.DB {
	return r.db
}

// Ping checks that the database answers
func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// listingExists reports ErrListingNotFound when the listing is missing
func listingExists(tx *gorm.DB, listingID string) error {
	var count int64
	if err := tx.Model(&models.Listing{}).Where("id = ?", listingID).Count(&count).Error; err != nil {
		return fmt.Errorf("check listing %s: %w", listingID, err)
	}
	if count == 0 {
		return fmt.Errorf("listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return nil
}
