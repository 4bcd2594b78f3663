package integrationtests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	auction "commerce/internal/auctionService"
	"commerce/internal/database"
	listings "commerce/internal/listingService"
	"commerce/internal/repository"
	"commerce/internal/server"
	users "commerce/internal/userService"
	watchlist "commerce/internal/watchlistService"
	"commerce/services/auction/helpers"
	"commerce/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// SetupTestRouter initializes the router over a fresh in-memory SQLite store.
func SetupTestRouter(t *testing.T) (*gin.Engine, *repository.GormRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetOutput(io.Discard)

	db, err := database.OpenSQLiteMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repo := repository.NewGormRepo(db, 5)
	router := server.SetupRouter(server.Services{
		Auction:   auction.NewAuctionService(repo),
		Listings:  listings.NewQueryService(repo),
		Watchlist: watchlist.NewWatchlistService(repo),
		Users:     users.NewUserService(repo).WithHashCost(bcrypt.MinCost),
		Ping:      repo.Ping,
	})
	return router, repo
}

// ExecuteRequest executes an HTTP request as userID (empty for anonymous) and returns the recorder.
func ExecuteRequest(t *testing.T, router http.Handler, method, url, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(helpers.UserHeader, userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes a request and decodes the "data" member of
// the envelope into out when the call succeeded.
func ExecuteRequestAndParse(t *testing.T, router http.Handler, method, url, userID string, body, out any) *httptest.ResponseRecorder {
	t.Helper()
	w := ExecuteRequest(t, router, method, url, userID, body)

	if out != nil && w.Code < http.StatusBadRequest {
		envelope := struct {
			Data json.RawMessage `json:"data"`
		}{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return w
}

// RegisterUser creates an account through the API and returns its ID
func RegisterUser(t *testing.T, router http.Handler, username string) string {
	t.Helper()
	var user helpers.UserResponse
	w := ExecuteRequestAndParse(t, router, http.MethodPost, "/users", "", helpers.RegisterRequest{
		Username:     username,
		Email:        username + "@example.com",
		Password:     "password123",
		Confirmation: "password123",
	}, &user)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return user.UserID
}

// CreateListing creates an uncategorised listing owned by ownerID
func CreateListing(t *testing.T, router http.Handler, ownerID, title, startingBid string) helpers.ListingResponse {
	t.Helper()
	var listing helpers.ListingResponse
	w := ExecuteRequestAndParse(t, router, http.MethodPost, "/listings", ownerID, helpers.CreateListingRequest{
		Title:       title,
		Description: "integration listing",
		StartingBid: json.Number(startingBid),
	}, &listing)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return listing
}

// PlaceBid posts a bid and returns the recorder
func PlaceBid(t *testing.T, router http.Handler, listingID, bidderID, amount string) *httptest.ResponseRecorder {
	t.Helper()
	return ExecuteRequest(t, router, http.MethodPost, "/bids", bidderID, helpers.PlaceBidRequest{
		ListingID: listingID,
		Amount:    json.Number(amount),
	})
}
