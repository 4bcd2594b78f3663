package handler

import (
	"net/http"

	"commerce/internal/models"
	"commerce/services/auction/helpers"
	"commerce/utils"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	query ListingQueryInterface
}

func NewListingHandler(query ListingQueryInterface) *ListingHandler {
	return &ListingHandler{query: query}
}

func (h *ListingHandler) respondListings(c *gin.Context, handlerName string, listings []models.Listing, err error, fields map[string]any) {
	if err != nil {
		helpers.HandleServiceError(c, handlerName, err, fields)
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponses(listings), "listings retrieved successfully")
	fields["count"] = len(listings)
	helpers.LogSuccess(handlerName, "listings retrieved successfully", fields)
}

// ActiveListingsHandler handles GET /listings
func (h *ListingHandler) ActiveListingsHandler(c *gin.Context) {
	listings, err := h.query.ActiveListings(c.Request.Context())
	h.respondListings(c, "ActiveListingsHandler", listings, err, map[string]any{})
}

// ListingDetailHandler handles GET /listings/:listing_id
func (h *ListingHandler) ListingDetailHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	detail, err := h.query.ListingDetail(c.Request.Context(), listingID, helpers.CurrentUserID(c))
	if err != nil {
		helpers.HandleServiceError(c, "ListingDetailHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	resp := helpers.ListingDetailResponse{
		Listing:         helpers.NewListingResponse(detail.Listing),
		BidCount:        detail.BidCount,
		Comments:        helpers.NewCommentResponses(detail.Comments),
		Watching:        detail.Watching,
		ViewerIsOwner:   detail.ViewerIsOwner,
		ViewerIsWinning: detail.ViewerIsWinning,
	}
	if detail.WinningBid != nil {
		winning := helpers.NewBidResponse(*detail.WinningBid)
		resp.WinningBid = &winning
	}

	utils.JSONResponse(c, http.StatusOK, resp, "listing retrieved successfully")
}

// ListingsByCategoryHandler handles GET /categories/:category_id/listings
func (h *ListingHandler) ListingsByCategoryHandler(c *gin.Context) {
	categoryID := c.Param("category_id")
	listings, err := h.query.ListingsByCategory(c.Request.Context(), categoryID)
	h.respondListings(c, "ListingsByCategoryHandler", listings, err, map[string]any{"category_id": categoryID})
}

// ListingsByOwnerHandler handles GET /users/:user_id/listings
func (h *ListingHandler) ListingsByOwnerHandler(c *gin.Context) {
	userID := c.Param("user_id")
	listings, err := h.query.ListingsByOwner(c.Request.Context(), userID)
	h.respondListings(c, "ListingsByOwnerHandler", listings, err, map[string]any{"user_id": userID})
}

// ListingsBidOnHandler handles GET /users/:user_id/bids
func (h *ListingHandler) ListingsBidOnHandler(c *gin.Context) {
	userID := c.Param("user_id")
	listings, err := h.query.ListingsBidOnBy(c.Request.Context(), userID)
	h.respondListings(c, "ListingsBidOnHandler", listings, err, map[string]any{"user_id": userID})
}

// CategoriesHandler handles GET /categories
func (h *ListingHandler) CategoriesHandler(c *gin.Context) {
	categories, err := h.query.Categories(c.Request.Context())
	if err != nil {
		helpers.HandleServiceError(c, "CategoriesHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewCategoryResponses(categories), "categories retrieved successfully")
}

// CreateCategoryHandler handles POST /categories
func (h *ListingHandler) CreateCategoryHandler(c *gin.Context) {
	if _, ok := requireUser(c, "CreateCategoryHandler"); !ok {
		return
	}

	var req helpers.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateCategoryHandler", err)
		return
	}

	category, err := h.query.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		helpers.HandleServiceError(c, "CreateCategoryHandler", err, map[string]any{"name": req.Name})
		return
	}

	resp := helpers.CategoryResponse{CategoryID: category.ID, Name: category.Name}
	utils.JSONResponse(c, http.StatusCreated, resp, "category created successfully")
}

// DeleteCategoryHandler handles DELETE /categories/:category_id
func (h *ListingHandler) DeleteCategoryHandler(c *gin.Context) {
	if _, ok := requireUser(c, "DeleteCategoryHandler"); !ok {
		return
	}

	categoryID := c.Param("category_id")
	if err := h.query.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		helpers.HandleServiceError(c, "DeleteCategoryHandler", err, map[string]any{"category_id": categoryID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"category_id": categoryID}, "category deleted successfully")
	helpers.LogSuccess("DeleteCategoryHandler", "category deleted successfully", map[string]any{"category_id": categoryID})
}
