package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce/internal/auctionerrors"
	"commerce/internal/metrics"
	"commerce/internal/models"
	"commerce/internal/repository"
	"commerce/internal/validation"
	"commerce/utils"

	"github.com/shopspring/decimal"
)

// AuctionService holds the bidding rules: bid placement, closing, and the
// listing lifecycle around them.
type AuctionService struct {
	repo repository.AuctionDB
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB) *AuctionService {
	return &AuctionService{
		repo: repo,
	}
}

// CreateListingInput carries the fields of a new listing
type CreateListingInput struct {
	OwnerID     string
	Title       string
	Description string
	StartingBid decimal.Decimal
	ImageURL    string
	CategoryID  string
}

// PlaceBidResult is the accepted bid and the listing as updated by it
type PlaceBidResult struct {
	Bid     models.Bid
	Listing models.Listing
}

// CreateListing validates and stores a new active listing
func (s *AuctionService) CreateListing(ctx context.Context, in CreateListingInput) (models.Listing, error) {
	listing, err := s.buildListing(ctx, in)
	if err != nil {
		return models.Listing{}, err
	}

	if err := s.repo.CreateListing(ctx, &listing); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing for user %s: %w", in.OwnerID, err)
	}

	utils.Info("listing created", map[string]any{
		"listing_id":   listing.ID,
		"owner_id":     listing.OwnerID,
		"starting_bid": listing.StartingBid.StringFixed(2),
	})
	return listing, nil
}

func (s *AuctionService) buildListing(ctx context.Context, in CreateListingInput) (models.Listing, error) {
	if in.OwnerID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing owner", auctionerrors.ErrInvalidListing)
	}
	title, err := validation.Title(in.Title)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}
	description, err := validation.Description(in.Description)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}
	if err := validation.CheckAmount(in.StartingBid); err != nil {
		return models.Listing{}, fmt.Errorf("service: starting bid: %w", err)
	}
	imageURL, err := validation.ImageURL(in.ImageURL)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}

	owner, err := s.repo.GetUser(ctx, in.OwnerID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to load owner: %w", err)
	}

	var category *models.Category
	var categoryID *string
	if in.CategoryID != "" {
		category, err = s.repo.GetCategory(ctx, in.CategoryID)
		if err != nil {
			return models.Listing{}, fmt.Errorf("service: failed to load category: %w", err)
		}
		categoryID = &category.ID
	}

	return models.Listing{
		ID:           utils.GenerateID(),
		Title:        title,
		Description:  description,
		StartingBid:  in.StartingBid,
		CurrentPrice: in.StartingBid,
		ImageURL:     imageURL,
		CategoryID:   categoryID,
		Category:     category,
		OwnerID:      owner.ID,
		Owner:        owner,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// PlaceBid validates and records a user's bid on a listing. The amount must
// be at least the starting bid and strictly above the highest bid so far.
func (s *AuctionService) PlaceBid(ctx context.Context, listingID, bidderID string, amount decimal.Decimal) (PlaceBidResult, error) {
	if listingID == "" || bidderID == "" {
		metrics.ObserveBid(metrics.BidInvalid)
		return PlaceBidResult{}, fmt.Errorf("service: %w - missing listingID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if err := validation.CheckAmount(amount); err != nil {
		metrics.ObserveBid(metrics.BidInvalid)
		return PlaceBidResult{}, fmt.Errorf("service: %w", err)
	}

	bid := models.Bid{
		ID:        utils.GenerateID(),
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	listing, err := s.repo.RecordBid(ctx, &bid, bidRules(bidderID, amount))
	if err != nil {
		metrics.ObserveBid(bidOutcome(err))
		return PlaceBidResult{}, fmt.Errorf("service: failed to record bid on listing %s by user %s: %w", listingID, bidderID, err)
	}

	metrics.ObserveBid(metrics.BidAccepted)
	utils.Info("bid accepted", map[string]any{
		"bid_id":     bid.ID,
		"listing_id": listingID,
		"bidder_id":  bidderID,
		"amount":     amount.StringFixed(2),
	})
	return PlaceBidResult{Bid: bid, Listing: *listing}, nil
}

// bidRules runs under the listing lock, against the committed highest bid
func bidRules(bidderID string, amount decimal.Decimal) repository.BidCheck {
	return func(listing *models.Listing, highest *models.Bid) error {
		if !listing.Active {
			return auctionerrors.ErrListingClosed
		}
		if listing.OwnerID == bidderID {
			return auctionerrors.ErrSelfBid
		}
		if amount.LessThan(listing.StartingBid) {
			return fmt.Errorf("%w - starting bid is %s", auctionerrors.ErrBelowStartingBid, listing.StartingBid.StringFixed(2))
		}
		if highest != nil && amount.LessThanOrEqual(highest.Amount) {
			return fmt.Errorf("%w - current highest bid is %s", auctionerrors.ErrBidTooLow, highest.Amount.StringFixed(2))
		}
		return nil
	}
}

func bidOutcome(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrConflict):
		return metrics.BidConflict
	case errors.Is(err, auctionerrors.ErrValidation),
		errors.Is(err, auctionerrors.ErrInvalidState),
		errors.Is(err, auctionerrors.ErrNotFound):
		return metrics.BidRejected
	default:
		return metrics.BidError
	}
}

// CloseListing ends the auction on a listing. Only the owner may close it,
// and only once.
func (s *AuctionService) CloseListing(ctx context.Context, listingID, requesterID string) (models.Listing, error) {
	if listingID == "" || requesterID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing listingID or requesterID", auctionerrors.ErrInvalidListing)
	}

	closed, err := s.repo.CloseListing(ctx, listingID, func(listing *models.Listing) error {
		if listing.OwnerID != requesterID {
			return auctionerrors.ErrNotListingOwner
		}
		if !listing.Active {
			return auctionerrors.ErrListingClosed
		}
		return nil
	})
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to close listing %s: %w", listingID, err)
	}

	metrics.ListingsClosed.Inc()
	utils.Info("listing closed", map[string]any{
		"listing_id":    listingID,
		"owner_id":      requesterID,
		"current_price": closed.CurrentPrice.StringFixed(2),
	})
	return *closed, nil
}

// GetListing returns a single listing
func (s *AuctionService) GetListing(ctx context.Context, listingID string) (models.Listing, error) {
	if listingID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidListing)
	}

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	return *listing, nil
}

// GetBidsForListing returns all bids on a listing in the order they were placed
func (s *AuctionService) GetBidsForListing(ctx context.Context, listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

// GetWinningBid returns the highest bid on a listing. On a closed listing its
// bidder is the winner.
func (s *AuctionService) GetWinningBid(ctx context.Context, listingID string) (models.Bid, error) {
	if listingID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	winning, err := s.repo.GetWinningBid(ctx, listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for listing %s: %w", listingID, err)
	}
	return *winning, nil
}

// AddComment appends a comment to an open or closed listing
func (s *AuctionService) AddComment(ctx context.Context, listingID, commenterID, content string) (models.Comment, error) {
	if listingID == "" || commenterID == "" {
		return models.Comment{}, fmt.Errorf("service: %w - missing listingID or commenterID", auctionerrors.ErrInvalidComment)
	}
	text, err := validation.CommentText(content)
	if err != nil {
		return models.Comment{}, fmt.Errorf("service: %w", err)
	}

	if _, err := s.GetListing(ctx, listingID); err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:          utils.GenerateID(),
		ListingID:   listingID,
		CommenterID: commenterID,
		Content:     text,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.AddComment(ctx, &comment); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to add comment to listing %s: %w", listingID, err)
	}
	return comment, nil
}

// GetComments returns a listing's comments, oldest first
func (s *AuctionService) GetComments(ctx context.Context, listingID string) ([]models.Comment, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidComment)
	}

	comments, err := s.repo.GetCommentsByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get comments for listing %s: %w", listingID, err)
	}
	return comments, nil
}
