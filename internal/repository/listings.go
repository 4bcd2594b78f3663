package repository

import (
	"context"
	"database/sql"
	"fmt"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateListing inserts a listing. Associations are never written through it.
func (r *GormRepo) CreateListing(ctx context.Context, listing *models.Listing) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(listing).Error; err != nil {
		return fmt.Errorf("create listing %q: %w", listing.Title, err)
	}
	return nil
}

// GetListing returns a listing with its owner and category loaded
func (r *GormRepo) GetListing(ctx context.Context, listingID string) (*models.Listing, error) {
	listing, err := loadListing(r.db.WithContext(ctx), listingID)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return listing, nil
}

// GetListingSnapshot reads a listing, its highest bid, its comments and the
// viewer's watch flag in one read-only transaction, so the price, bid count
// and winning bid agree with each other. viewerID may be empty.
func (r *GormRepo) GetListingSnapshot(ctx context.Context, listingID, viewerID string) (*ListingSnapshot, error) {
	var snap ListingSnapshot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := loadListing(tx, listingID)
		if err != nil {
			return err
		}
		snap.Listing = *listing

		if snap.Winning, err = highestBid(tx.Preload("Bidder"), listingID); err != nil {
			return err
		}
		if snap.Comments, err = commentsOf(tx, listingID); err != nil {
			return err
		}
		if viewerID != "" {
			if snap.Watching, err = isWatching(tx, viewerID, listingID); err != nil {
				return err
			}
		}
		return nil
	}, snapshotTxOptions(r.db)...)
	if err != nil {
		return nil, fmt.Errorf("get listing snapshot: %w", err)
	}
	return &snap, nil
}

// snapshotTxOptions asks PostgreSQL for one snapshot across every statement.
// SQLite transactions already see a single snapshot.
func snapshotTxOptions(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
}

// FindListings returns the listings matching filter, newest first
func (r *GormRepo) FindListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.Listing{}).Preload("Owner").Preload("Category")

	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.WatcherID != "" {
		watched := db.Model(&models.WatchlistEntry{}).Select("listing_id").Where("user_id = ?", filter.WatcherID)
		query = query.Where("id IN (?)", watched)
	}
	if filter.BidderID != "" {
		bidOn := db.Model(&models.Bid{}).Select("listing_id").Where("bidder_id = ?", filter.BidderID)
		query = query.Where("id IN (?)", bidOn)
	}

	listings := []models.Listing{}
	if err := query.Order("created_at DESC").Order("id ASC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	return listings, nil
}

// CloseListing locks the listing, runs check, and marks it inactive
func (r *GormRepo) CloseListing(ctx context.Context, listingID string, check ListingCheck) (*models.Listing, error) {
	var closed *models.Listing
	err := r.withRetry(ctx, "close listing "+listingID, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			listing, err := lockListing(tx, listingID)
			if err != nil {
				return err
			}
			if check != nil {
				if err := check(listing); err != nil {
					return err
				}
			}

			res := tx.Model(&models.Listing{}).
				Where("id = ? AND active = ?", listingID, true).
				Update("active", false)
			if res.Error != nil {
				return fmt.Errorf("close listing %s: %w", listingID, res.Error)
			}
			if res.RowsAffected == 0 {
				return errStaleRow
			}

			closed, err = loadListing(tx, listingID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// loadListing reads a listing with its owner and category, without locking
func loadListing(tx *gorm.DB, listingID string) (*models.Listing, error) {
	var listing models.Listing
	err := tx.Preload("Owner").
		Preload("Category").
		Where("id = ?", listingID).
		First(&listing).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", listingID, notFound(err, auctionerrors.ErrListingNotFound))
	}
	return &listing, nil
}

// lockListing reads a listing row with an exclusive row lock where the
// dialect supports one.
func lockListing(tx *gorm.DB, listingID string) (*models.Listing, error) {
	var listing models.Listing
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", listingID).
		First(&listing).Error
	if err != nil {
		return nil, fmt.Errorf("lock listing %s: %w", listingID, notFound(err, auctionerrors.ErrListingNotFound))
	}
	return &listing, nil
}
