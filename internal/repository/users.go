package repository

import (
	"context"
	"errors"
	"fmt"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"

	"gorm.io/gorm"
)

// CreateUser inserts a new user; usernames are unique
func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("create user %q: %w", user.Username, auctionerrors.ErrUsernameTaken)
	}
	if err != nil {
		return fmt.Errorf("create user %q: %w", user.Username, err)
	}
	return nil
}

// GetUser returns the user with the given ID
func (r *GormRepo) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, notFound(err, auctionerrors.ErrUserNotFound))
	}
	return &user, nil
}

// GetUserByUsername returns the user registered under username
func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, notFound(err, auctionerrors.ErrUserNotFound))
	}
	return &user, nil
}

// CreateCategory inserts a category; names are unique
func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("create category %q: %w", category.Name, auctionerrors.ErrCategoryExists)
	}
	if err != nil {
		return fmt.Errorf("create category %q: %w", category.Name, err)
	}
	return nil
}

// GetCategory returns the category with the given ID
func (r *GormRepo) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error; err != nil {
		return nil, fmt.Errorf("get category %s: %w", categoryID, notFound(err, auctionerrors.ErrCategoryNotFound))
	}
	return &category, nil
}

// ListCategories returns all categories ordered by name
func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes a category. Listings in it are kept with no category.
func (r *GormRepo) DeleteCategory(ctx context.Context, categoryID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Listing{}).
			Where("category_id = ?", categoryID).
			Update("category_id", gorm.Expr("NULL"))
		if res.Error != nil {
			return fmt.Errorf("detach listings from category %s: %w", categoryID, res.Error)
		}

		res = tx.Where("id = ?", categoryID).Delete(&models.Category{})
		if res.Error != nil {
			return fmt.Errorf("delete category %s: %w", categoryID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
		}
		return nil
	})
}
