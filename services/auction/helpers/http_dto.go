package helpers

import (
	"encoding/json"
	"time"

	"commerce/internal/models"
)

// Request DTOs. Amounts are accepted as JSON numbers or strings and parsed
// as decimals, never as floats.
type RegisterRequest struct {
	Username     string `json:"username" binding:"required,max=150"`
	Email        string `json:"email"`
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

type CreateListingRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description" binding:"required"`
	StartingBid json.Number `json:"starting_bid" binding:"required"`
	ImageURL    string      `json:"image_url"`
	CategoryID  string      `json:"category_id"`
}

type PlaceBidRequest struct {
	ListingID string      `json:"listing_id" binding:"required"`
	Amount    json.Number `json:"amount" binding:"required"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// Response DTOs
type UserResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CategoryResponse struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

type ListingResponse struct {
	ListingID     string  `json:"listing_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	StartingBid   string  `json:"starting_bid"`
	CurrentPrice  string  `json:"current_price"`
	ImageURL      string  `json:"image_url,omitempty"`
	CategoryID    *string `json:"category_id"`
	CategoryName  string  `json:"category_name,omitempty"`
	OwnerID       string  `json:"owner_id"`
	OwnerUsername string  `json:"owner_username,omitempty"`
	Active        bool    `json:"active"`
	BidCount      int     `json:"bid_count"`
	CreatedAt     string  `json:"created_at"`
}

type BidResponse struct {
	BidID          string `json:"bid_id"`
	ListingID      string `json:"listing_id"`
	BidderID       string `json:"bidder_id"`
	BidderUsername string `json:"bidder_username,omitempty"`
	Amount         string `json:"amount"`
	CreatedAt      string `json:"created_at"`
}

type PlaceBidResponse struct {
	Bid     BidResponse     `json:"bid"`
	Listing ListingResponse `json:"listing"`
}

type CommentResponse struct {
	CommentID         string `json:"comment_id"`
	ListingID         string `json:"listing_id"`
	CommenterID       string `json:"commenter_id"`
	CommenterUsername string `json:"commenter_username,omitempty"`
	Content           string `json:"content"`
	CreatedAt         string `json:"created_at"`
}

type ListingDetailResponse struct {
	Listing         ListingResponse   `json:"listing"`
	BidCount        int               `json:"bid_count"`
	WinningBid      *BidResponse      `json:"winning_bid"`
	Comments        []CommentResponse `json:"comments"`
	Watching        bool              `json:"watching"`
	ViewerIsOwner   bool              `json:"viewer_is_owner"`
	ViewerIsWinning bool              `json:"viewer_is_winning"`
}

type WatchResponse struct {
	ListingID string `json:"listing_id"`
	Watching  bool   `json:"watching"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{UserID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: formatTime(u.CreatedAt)}
}

func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{CategoryID: c.ID, Name: c.Name})
	}
	return out
}

func NewListingResponse(l models.Listing) ListingResponse {
	resp := ListingResponse{
		ListingID:    l.ID,
		Title:        l.Title,
		Description:  l.Description,
		StartingBid:  l.StartingBid.StringFixed(2),
		CurrentPrice: l.CurrentPrice.StringFixed(2),
		ImageURL:     l.ImageURL,
		CategoryID:   l.CategoryID,
		OwnerID:      l.OwnerID,
		Active:       l.Active,
		BidCount:     l.BidCount,
		CreatedAt:    formatTime(l.CreatedAt),
	}
	if l.Category != nil {
		resp.CategoryName = l.Category.Name
	}
	if l.Owner != nil {
		resp.OwnerUsername = l.Owner.Username
	}
	return resp
}

func NewListingResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, NewListingResponse(l))
	}
	return out
}

func NewBidResponse(b models.Bid) BidResponse {
	resp := BidResponse{
		BidID:     b.ID,
		ListingID: b.ListingID,
		BidderID:  b.BidderID,
		Amount:    b.Amount.StringFixed(2),
		CreatedAt: formatTime(b.CreatedAt),
	}
	if b.Bidder != nil {
		resp.BidderUsername = b.Bidder.Username
	}
	return resp
}

func NewBidResponses(bids []models.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, NewBidResponse(b))
	}
	return out
}

func NewCommentResponse(c models.Comment) CommentResponse {
	resp := CommentResponse{
		CommentID:   c.ID,
		ListingID:   c.ListingID,
		CommenterID: c.CommenterID,
		Content:     c.Content,
		CreatedAt:   formatTime(c.CreatedAt),
	}
	if c.Commenter != nil {
		resp.CommenterUsername = c.Commenter.Username
	}
	return resp
}

func NewCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}
