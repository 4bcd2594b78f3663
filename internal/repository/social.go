package repository

import (
	"context"
	"fmt"

	"commerce/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddComment appends a comment to a listing
func (r *GormRepo) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("add comment to listing %s: %w", comment.ListingID, err)
	}
	return nil
}

// GetCommentsByListing returns a listing's comments, oldest first
func (r *GormRepo) GetCommentsByListing(ctx context.Context, listingID string) ([]models.Comment, error) {
	db := r.db.WithContext(ctx)
	if err := listingExists(db, listingID); err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	return commentsOf(db, listingID)
}

func commentsOf(tx *gorm.DB, listingID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := tx.Preload("Commenter").
		Where("listing_id = ?", listingID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("get comments for listing %s: %w", listingID, err)
	}
	return comments, nil
}

// ToggleWatch adds the listing to the user's watchlist, or removes it if it is
// already there. It returns whether the user watches the listing afterwards.
func (r *GormRepo) ToggleWatch(ctx context.Context, userID, listingID string) (bool, error) {
	var watching bool
	err := r.withRetry(ctx, "toggle watch on listing "+listingID, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := listingExists(tx, listingID); err != nil {
				return err
			}

			res := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&models.WatchlistEntry{})
			if res.Error != nil {
				return fmt.Errorf("unwatch listing %s: %w", listingID, res.Error)
			}
			if res.RowsAffected > 0 {
				watching = false
				return nil
			}

			entry := models.WatchlistEntry{UserID: userID, ListingID: listingID}
			if err := tx.Omit(clause.Associations).Create(&entry).Error; err != nil {
				return fmt.Errorf("watch listing %s: %w", listingID, err)
			}
			watching = true
			return nil
		})
	})
	return watching, err
}

// IsWatching reports whether the listing is on the user's watchlist
func (r *GormRepo) IsWatching(ctx context.Context, userID, listingID string) (bool, error) {
	db := r.db.WithContext(ctx)
	if err := listingExists(db, listingID); err != nil {
		return false, err
	}
	return isWatching(db, userID, listingID)
}

func isWatching(tx *gorm.DB, userID, listingID string) (bool, error) {
	var count int64
	err := tx.Model(&models.WatchlistEntry{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return count > 0, nil
}
