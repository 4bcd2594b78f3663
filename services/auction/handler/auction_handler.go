package handler

import (
	"net/http"

	"commerce/internal/auctionerrors"
	auction "commerce/internal/auctionService"
	"commerce/internal/validation"
	"commerce/services/auction/helpers"
	"commerce/utils"

	"github.com/gin-gonic/gin"
)

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// requireUser returns the acting user, or answers 401 and false
func requireUser(c *gin.Context, handlerName string) (string, bool) {
	userID := helpers.CurrentUserID(c)
	if userID == "" {
		helpers.HandleServiceError(c, handlerName, auctionerrors.ErrUnauthenticated, nil)
		return "", false
	}
	return userID, true
}

// CreateListingHandler handles POST /listings
func (h *AuctionHandler) CreateListingHandler(c *gin.Context) {
	ownerID, ok := requireUser(c, "CreateListingHandler")
	if !ok {
		return
	}

	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}
	startingBid, err := validation.ParseAmount(req.StartingBid.String())
	if err != nil {
		helpers.HandleServiceError(c, "CreateListingHandler", err, nil)
		return
	}

	listing, err := h.service.CreateListing(c.Request.Context(), auction.CreateListingInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		StartingBid: startingBid,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		helpers.HandleServiceError(c, "CreateListingHandler", err, map[string]any{"owner_id": ownerID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewListingResponse(listing), "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": listing.ID,
		"owner_id":   ownerID,
	})
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	bidderID, ok := requireUser(c, "PlaceBidHandler")
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}
	amount, err := validation.ParseAmount(req.Amount.String())
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{"listing_id": req.ListingID})
		return
	}

	result, err := h.service.PlaceBid(c.Request.Context(), req.ListingID, bidderID, amount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{
			"listing_id": req.ListingID,
			"bidder_id":  bidderID,
			"amount":     amount.StringFixed(2),
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		Bid:     helpers.NewBidResponse(result.Bid),
		Listing: helpers.NewListingResponse(result.Listing),
	}
	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     result.Bid.ID,
		"listing_id": req.ListingID,
		"bidder_id":  bidderID,
		"amount":     resp.Bid.Amount,
	})
}

// CloseListingHandler handles POST /listings/:listing_id/close
func (h *AuctionHandler) CloseListingHandler(c *gin.Context) {
	requesterID, ok := requireUser(c, "CloseListingHandler")
	if !ok {
		return
	}

	listingID := c.Param("listing_id")
	listing, err := h.service.CloseListing(c.Request.Context(), listingID, requesterID)
	if err != nil {
		helpers.HandleServiceError(c, "CloseListingHandler", err, map[string]any{
			"listing_id":   listingID,
			"requester_id": requesterID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponse(listing), "listing closed successfully")
	helpers.LogSuccess("CloseListingHandler", "listing closed successfully", map[string]any{"listing_id": listingID})
}

// GetBidsByListingHandler handles GET /listings/:listing_id/bids
func (h *AuctionHandler) GetBidsByListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bids, err := h.service.GetBidsForListing(c.Request.Context(), listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetBidsByListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByListingHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(bids),
	})
}

// GetWinningBidHandler handles GET /listings/:listing_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bid, err := h.service.GetWinningBid(c.Request.Context(), listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetWinningBidHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.ID,
		"listing_id": listingID,
		"bidder_id":  bid.BidderID,
	})
}

// AddCommentHandler handles POST /listings/:listing_id/comments
func (h *AuctionHandler) AddCommentHandler(c *gin.Context) {
	commenterID, ok := requireUser(c, "AddCommentHandler")
	if !ok {
		return
	}

	var req helpers.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddCommentHandler", err)
		return
	}

	listingID := c.Param("listing_id")
	comment, err := h.service.AddComment(c.Request.Context(), listingID, commenterID, req.Content)
	if err != nil {
		helpers.HandleServiceError(c, "AddCommentHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewCommentResponse(comment), "comment added successfully")
	helpers.LogSuccess("AddCommentHandler", "comment added successfully", map[string]any{
		"comment_id": comment.ID,
		"listing_id": listingID,
	})
}

// GetCommentsHandler handles GET /listings/:listing_id/comments
func (h *AuctionHandler) GetCommentsHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	comments, err := h.service.GetComments(c.Request.Context(), listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetCommentsHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewCommentResponses(comments), "comments retrieved successfully")
}
