package handler

import (
	"errors"
	"net/http"
	"testing"

	"commerce/internal/auctionerrors"
	listings "commerce/internal/listingService"
	"commerce/internal/models"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestListingQueryHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuery := NewMockListingQueryInterface(ctrl)
	handler := NewListingHandler(mockQuery)

	router := newTestRouter()
	router.GET("/listings", handler.ActiveListingsHandler)
	router.GET("/categories/:category_id/listings", handler.ListingsByCategoryHandler)
	router.GET("/users/:user_id/listings", handler.ListingsByOwnerHandler)
	router.GET("/users/:user_id/bids", handler.ListingsBidOnHandler)

	found := []models.Listing{
		{ID: "l2", Title: "Newer", StartingBid: decimal.NewFromInt(5), CurrentPrice: decimal.NewFromInt(7), Active: true},
		{ID: "l1", Title: "Older", StartingBid: decimal.NewFromInt(5), CurrentPrice: decimal.NewFromInt(5), Active: true},
	}

	tests := []struct {
		name           string
		path           string
		mockSetup      func()
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "active",
			path: "/listings",
			mockSetup: func() {
				mockQuery.EXPECT().ActiveListings(gomock.Any()).Return(found, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "active_empty",
			path: "/listings",
			mockSetup: func() {
				mockQuery.EXPECT().ActiveListings(gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "by_category",
			path: "/categories/toys/listings",
			mockSetup: func() {
				mockQuery.EXPECT().ListingsByCategory(gomock.Any(), "toys").Return(found[:1], nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name: "unknown_category",
			path: "/categories/nope/listings",
			mockSetup: func() {
				mockQuery.EXPECT().ListingsByCategory(gomock.Any(), "nope").Return(nil, auctionerrors.ErrCategoryNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "by_owner",
			path: "/users/u1/listings",
			mockSetup: func() {
				mockQuery.EXPECT().ListingsByOwner(gomock.Any(), "u1").Return(found, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "bid_on",
			path: "/users/u1/bids",
			mockSetup: func() {
				mockQuery.EXPECT().ListingsBidOnBy(gomock.Any(), "u1").Return(found[1:], nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name: "store_failure",
			path: "/listings",
			mockSetup: func() {
				mockQuery.EXPECT().ActiveListings(gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doRequest(t, router, http.MethodGet, tc.path, "", nil)
			require.Equal(t, tc.expectedStatus, w.Code)
			if w.Code == http.StatusOK {
				require.Len(t, resp["data"].([]any), tc.expectedCount)
			}
		})
	}
}

func TestListingDetailHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuery := NewMockListingQueryInterface(ctrl)
	handler := NewListingHandler(mockQuery)

	router := newTestRouter()
	router.GET("/listings/:listing_id", handler.ListingDetailHandler)

	winning := models.Bid{ID: "b1", ListingID: "l1", BidderID: "viewer", Amount: decimal.RequireFromString("30")}
	mockQuery.EXPECT().ListingDetail(gomock.Any(), "l1", "viewer").Return(listings.ListingDetail{
		Listing:         models.Listing{ID: "l1", Active: false, CurrentPrice: winning.Amount, BidCount: 3},
		BidCount:        3,
		WinningBid:      &winning,
		Comments:        []models.Comment{{ID: "c1", Content: "hi"}},
		Watching:        true,
		ViewerIsWinning: true,
	}, nil)

	w, resp := doRequest(t, router, http.MethodGet, "/listings/l1", "viewer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	require.Equal(t, float64(3), data["bid_count"])
	require.Equal(t, true, data["viewer_is_winning"])
	require.Equal(t, true, data["watching"])
	require.Equal(t, "30.00", data["winning_bid"].(map[string]any)["amount"])
	require.Len(t, data["comments"].([]any), 1)

	mockQuery.EXPECT().ListingDetail(gomock.Any(), "l2", "").Return(listings.ListingDetail{
		Listing: models.Listing{ID: "l2", Active: true},
	}, nil)
	w, resp = doRequest(t, router, http.MethodGet, "/listings/l2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, resp["data"].(map[string]any)["winning_bid"])

	mockQuery.EXPECT().ListingDetail(gomock.Any(), "missing", "").Return(listings.ListingDetail{}, auctionerrors.ErrListingNotFound)
	w, _ = doRequest(t, router, http.MethodGet, "/listings/missing", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuery := NewMockListingQueryInterface(ctrl)
	handler := NewListingHandler(mockQuery)

	router := newTestRouter()
	router.GET("/categories", handler.CategoriesHandler)
	router.POST("/categories", handler.CreateCategoryHandler)
	router.DELETE("/categories/:category_id", handler.DeleteCategoryHandler)

	mockQuery.EXPECT().Categories(gomock.Any()).Return([]models.Category{{ID: "c1", Name: "Toys"}}, nil)
	w, resp := doRequest(t, router, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Toys", resp["data"].([]any)[0].(map[string]any)["name"])

	mockQuery.EXPECT().CreateCategory(gomock.Any(), "Home").Return(models.Category{ID: "c2", Name: "Home"}, nil)
	w, _ = doRequest(t, router, http.MethodPost, "/categories", "admin", `{"name":"Home"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	mockQuery.EXPECT().CreateCategory(gomock.Any(), "Home").Return(models.Category{}, auctionerrors.ErrCategoryExists)
	w, resp = doRequest(t, router, http.MethodPost, "/categories", "admin", `{"name":"Home"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "category already exists", resp["message"])

	w, _ = doRequest(t, router, http.MethodPost, "/categories", "", `{"name":"Home"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	mockQuery.EXPECT().DeleteCategory(gomock.Any(), "c2").Return(nil)
	w, _ = doRequest(t, router, http.MethodDelete, "/categories/c2", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)

	mockQuery.EXPECT().DeleteCategory(gomock.Any(), "c2").Return(auctionerrors.ErrCategoryNotFound)
	w, _ = doRequest(t, router, http.MethodDelete, "/categories/c2", "admin", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
