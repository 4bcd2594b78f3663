package watchlist

import (
	"context"
	"fmt"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"
	"commerce/internal/repository"
	"commerce/utils"
)

// WatchlistService manages which listings a user follows
type WatchlistService struct {
	repo repository.AuctionDB
}

func NewWatchlistService(repo repository.AuctionDB) *WatchlistService {
	return &WatchlistService{repo: repo}
}

// ToggleWatch flips the user's membership for a listing and returns the new state
func (s *WatchlistService) ToggleWatch(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" || listingID == "" {
		return false, fmt.Errorf("service: %w - missing userID or listingID", auctionerrors.ErrValidation)
	}

	watching, err := s.repo.ToggleWatch(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("service: failed to toggle watch on listing %s: %w", listingID, err)
	}

	utils.Info("watchlist toggled", map[string]any{
		"user_id":    userID,
		"listing_id": listingID,
		"watching":   watching,
	})
	return watching, nil
}

// ListWatched returns every listing on the user's watchlist, open or closed
func (s *WatchlistService) ListWatched(ctx context.Context, userID string) ([]models.Listing, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrValidation)
	}

	listings, err := s.repo.FindListings(ctx, repository.ListingFilter{WatcherID: userID})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list watchlist of user %s: %w", userID, err)
	}
	return listings, nil
}

// IsWatching reports whether the listing is on the user's watchlist
func (s *WatchlistService) IsWatching(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" || listingID == "" {
		return false, nil
	}

	watching, err := s.repo.IsWatching(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("service: failed to check watchlist: %w", err)
	}
	return watching, nil
}
