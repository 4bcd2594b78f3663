package handler

import (
	"net/http"

	users "commerce/internal/userService"
	"commerce/services/auction/helpers"
	"commerce/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves registration and the watchlist, the two user scoped resources
type UserHandler struct {
	users     UserServiceInterface
	watchlist WatchlistServiceInterface
}

func NewUserHandler(users UserServiceInterface, watchlist WatchlistServiceInterface) *UserHandler {
	return &UserHandler{users: users, watchlist: watchlist}
}

// RegisterHandler handles POST /users
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), users.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		helpers.HandleServiceError(c, "RegisterHandler", err, map[string]any{"username": req.Username})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewUserResponse(user), "user registered successfully")
	helpers.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{"user_id": user.ID})
}

// ToggleWatchHandler handles POST /listings/:listing_id/watch
func (h *UserHandler) ToggleWatchHandler(c *gin.Context) {
	userID, ok := requireUser(c, "ToggleWatchHandler")
	if !ok {
		return
	}

	listingID := c.Param("listing_id")
	watching, err := h.watchlist.ToggleWatch(c.Request.Context(), userID, listingID)
	if err != nil {
		helpers.HandleServiceError(c, "ToggleWatchHandler", err, map[string]any{"listing_id": listingID, "user_id": userID})
		return
	}

	message := "listing removed from watchlist"
	if watching {
		message = "listing added to watchlist"
	}
	utils.JSONResponse(c, http.StatusOK, helpers.WatchResponse{ListingID: listingID, Watching: watching}, message)
}

// WatchStatusHandler handles GET /listings/:listing_id/watch
func (h *UserHandler) WatchStatusHandler(c *gin.Context) {
	userID, ok := requireUser(c, "WatchStatusHandler")
	if !ok {
		return
	}

	listingID := c.Param("listing_id")
	watching, err := h.watchlist.IsWatching(c.Request.Context(), userID, listingID)
	if err != nil {
		helpers.HandleServiceError(c, "WatchStatusHandler", err, map[string]any{"listing_id": listingID, "user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.WatchResponse{ListingID: listingID, Watching: watching}, "watch status retrieved successfully")
}

// WatchlistHandler handles GET /watchlist
func (h *UserHandler) WatchlistHandler(c *gin.Context) {
	userID, ok := requireUser(c, "WatchlistHandler")
	if !ok {
		return
	}

	listings, err := h.watchlist.ListWatched(c.Request.Context(), userID)
	if err != nil {
		helpers.HandleServiceError(c, "WatchlistHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponses(listings), "watchlist retrieved successfully")
}
