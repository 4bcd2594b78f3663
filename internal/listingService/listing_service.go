package listings

import (
	"context"
	"fmt"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"
	"commerce/internal/repository"
	"commerce/internal/validation"
	"commerce/utils"
)

// QueryService answers the browsing queries of the site and manages categories
type QueryService struct {
	repo repository.AuctionDB
}

// NewQueryService creates a new QueryService instance
func NewQueryService(repo repository.AuctionDB) *QueryService {
	return &QueryService{repo: repo}
}

// ListingDetail is everything the listing page shows, from one viewer's
// point of view. WinningBid is nil until someone bids.
type ListingDetail struct {
	Listing         models.Listing
	BidCount        int
	WinningBid      *models.Bid
	Comments        []models.Comment
	Watching        bool
	ViewerIsOwner   bool
	ViewerIsWinning bool
}

// ActiveListings returns open listings, newest first
func (s *QueryService) ActiveListings(ctx context.Context) ([]models.Listing, error) {
	listings, err := s.repo.FindListings(ctx, repository.ListingFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list active listings: %w", err)
	}
	return listings, nil
}

// ListingsByCategory returns the open listings of one category
func (s *QueryService) ListingsByCategory(ctx context.Context, categoryID string) ([]models.Listing, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("service: %w - empty category ID", auctionerrors.ErrInvalidCategory)
	}
	if _, err := s.repo.GetCategory(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("service: failed to load category: %w", err)
	}

	listings, err := s.repo.FindListings(ctx, repository.ListingFilter{ActiveOnly: true, CategoryID: categoryID})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list category %s: %w", categoryID, err)
	}
	return listings, nil
}

// ListingsByOwner returns every listing a user created, open or closed
func (s *QueryService) ListingsByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	return s.listingsOfUser(ctx, ownerID, repository.ListingFilter{OwnerID: ownerID})
}

// ListingsBidOnBy returns the listings a user has placed at least one bid on
func (s *QueryService) ListingsBidOnBy(ctx context.Context, userID string) ([]models.Listing, error) {
	return s.listingsOfUser(ctx, userID, repository.ListingFilter{BidderID: userID})
}

func (s *QueryService) listingsOfUser(ctx context.Context, userID string, filter repository.ListingFilter) ([]models.Listing, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrValidation)
	}
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("service: failed to load user: %w", err)
	}

	listings, err := s.repo.FindListings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list listings of user %s: %w", userID, err)
	}
	return listings, nil
}

// ListingDetail assembles the listing page. viewerID may be empty for
// anonymous viewers.
func (s *QueryService) ListingDetail(ctx context.Context, listingID, viewerID string) (ListingDetail, error) {
	if listingID == "" {
		return ListingDetail{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidListing)
	}

	snap, err := s.repo.GetListingSnapshot(ctx, listingID, viewerID)
	if err != nil {
		return ListingDetail{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}

	detail := ListingDetail{
		Listing:       snap.Listing,
		BidCount:      snap.Listing.BidCount,
		WinningBid:    snap.Winning,
		Comments:      snap.Comments,
		Watching:      snap.Watching,
		ViewerIsOwner: viewerID != "" && viewerID == snap.Listing.OwnerID,
	}
	if snap.Winning != nil {
		detail.ViewerIsWinning = viewerID != "" && snap.Winning.BidderID == viewerID
	}
	return detail, nil
}

// Categories returns all categories by name
func (s *QueryService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a category with a unique name
func (s *QueryService) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	name, err := validation.CategoryName(name)
	if err != nil {
		return models.Category{}, fmt.Errorf("service: %w", err)
	}

	category := models.Category{ID: utils.GenerateID(), Name: name}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return models.Category{}, fmt.Errorf("service: failed to create category %q: %w", name, err)
	}

	utils.Info("category created", map[string]any{"category_id": category.ID, "name": name})
	return category, nil
}

// DeleteCategory removes a category; its listings stay, uncategorised
func (s *QueryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return fmt.Errorf("service: %w - empty category ID", auctionerrors.ErrInvalidCategory)
	}
	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("service: failed to delete category %s: %w", categoryID, err)
	}

	utils.Info("category deleted", map[string]any{"category_id": categoryID})
	return nil
}
