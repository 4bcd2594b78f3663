package repository

import (
	"context"
	"fmt"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordBid stores bid and raises the listing's current price in one
// transaction. The listing row is locked, check sees the listing and the
// current highest bid, and the price update only applies if bid_count is
// unchanged since the read. Stale reads are retried.
func (r *GormRepo) RecordBid(ctx context.Context, bid *models.Bid, check BidCheck) (*models.Listing, error) {
	var updated *models.Listing
	err := r.withRetry(ctx, "record bid for listing "+bid.ListingID, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			listing, err := lockListing(tx, bid.ListingID)
			if err != nil {
				return err
			}

			highest, err := highestBid(tx, listing.ID)
			if err != nil {
				return err
			}
			if check != nil {
				if err := check(listing, highest); err != nil {
					return err
				}
			}

			res := tx.Model(&models.Listing{}).
				Where("id = ? AND active = ? AND bid_count = ?", listing.ID, true, listing.BidCount).
				Updates(map[string]any{
					"current_price": bid.Amount,
					"bid_count":     gorm.Expr("bid_count + 1"),
				})
			if res.Error != nil {
				return fmt.Errorf("update price of listing %s: %w", listing.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return errStaleRow
			}

			// stamped under the lock so history order matches acceptance order
			bid.CreatedAt = tx.NowFunc()
			if err := tx.Omit(clause.Associations).Create(bid).Error; err != nil {
				return fmt.Errorf("insert bid for listing %s: %w", listing.ID, err)
			}

			updated, err = loadListing(tx, listing.ID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetBidsByListing returns all bids on a listing, oldest first
func (r *GormRepo) GetBidsByListing(ctx context.Context, listingID string) ([]models.Bid, error) {
	db := r.db.WithContext(ctx)
	if err := listingExists(db, listingID); err != nil {
		return nil, fmt.Errorf("get bids: %w", err)
	}

	bids := []models.Bid{}
	err := db.Preload("Bidder").
		Where("listing_id = ?", listingID).
		Order("created_at ASC").Order("id ASC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

// GetWinningBid returns the highest bid on a listing, or ErrNoBids
func (r *GormRepo) GetWinningBid(ctx context.Context, listingID string) (*models.Bid, error) {
	db := r.db.WithContext(ctx)
	if err := listingExists(db, listingID); err != nil {
		return nil, fmt.Errorf("get winning bid: %w", err)
	}

	winning, err := highestBid(db.Preload("Bidder"), listingID)
	if err != nil {
		return nil, err
	}
	if winning == nil {
		return nil, fmt.Errorf("get winning bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return winning, nil
}

// highestBid returns nil, nil when the listing has no bids. Ties go to the
// earlier bid.
func highestBid(tx *gorm.DB, listingID string) (*models.Bid, error) {
	var bids []models.Bid
	err := tx.Where("listing_id = ?", listingID).
		Order("amount DESC").Order("created_at ASC").Order("id ASC").
		Limit(1).
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("highest bid for listing %s: %w", listingID, err)
	}
	if len(bids) == 0 {
		return nil, nil
	}
	return &bids[0], nil
}
