package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered participant in the auction
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"user_id"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:254" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category is an optional classification of a listing
type Category struct {
	ID   string `gorm:"primaryKey;size:36" json:"category_id"`
	Name string `gorm:"size:64;not null;uniqueIndex" json:"name"`
}

// Listing represents an item open for bidding, owned by one user.
// CurrentPrice is the highest accepted bid, or StartingBid when no bid exists.
// BidCount doubles as the optimistic concurrency token for bid placement.
type Listing struct {
	ID           string          `gorm:"primaryKey;size:36"`
	Title        string          `gorm:"size:100;not null"`
	Description  string          `gorm:"type:text;not null"`
	StartingBid  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageURL     string          `gorm:"size:500"`
	CategoryID   *string         `gorm:"size:36;index"`
	Category     *Category       `gorm:"constraint:OnDelete:SET NULL"`
	OwnerID      string          `gorm:"size:36;not null;index"`
	Owner        *User           `gorm:"constraint:OnDelete:CASCADE"`
	Active       bool            `gorm:"not null;index"`
	BidCount     int             `gorm:"not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null;index"`
}

// Bid represents a user's bid on a listing
type Bid struct {
	ID        string          `gorm:"primaryKey;size:36"`
	ListingID string          `gorm:"size:36;not null;index"`
	Listing   *Listing        `gorm:"constraint:OnDelete:CASCADE"`
	BidderID  string          `gorm:"size:36;not null;index"`
	Bidder    *User           `gorm:"constraint:OnDelete:CASCADE"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// Comment is free text left on a listing
type Comment struct {
	ID          string    `gorm:"primaryKey;size:36"`
	ListingID   string    `gorm:"size:36;not null;index"`
	Listing     *Listing  `gorm:"constraint:OnDelete:CASCADE"`
	CommenterID string    `gorm:"size:36;not null"`
	Commenter   *User     `gorm:"constraint:OnDelete:CASCADE"`
	Content     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// WatchlistEntry records that a user watches a listing
type WatchlistEntry struct {
	UserID    string   `gorm:"primaryKey;size:36"`
	User      *User    `gorm:"constraint:OnDelete:CASCADE"`
	ListingID string   `gorm:"primaryKey;size:36"`
	Listing   *Listing `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName keeps the join table name independent of the struct name
func (WatchlistEntry) TableName() string {
	return "watchlist"
}

// All returns every persisted model in dependency order, for migrations
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Listing{},
		&Bid{},
		&Comment{},
		&WatchlistEntry{},
	}
}
