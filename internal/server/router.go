package server

import (
	"context"
	"net/http"

	auction "commerce/internal/auctionService"
	listings "commerce/internal/listingService"
	"commerce/internal/metrics"
	"commerce/internal/repository"
	users "commerce/internal/userService"
	watchlist "commerce/internal/watchlistService"
	"commerce/services/auction/handler"
	"commerce/utils"

	"github.com/gin-gonic/gin"
)

// Services bundles what the router needs. Ping backs the health check and may be nil.
type Services struct {
	Auction   handler.AuctionServiceInterface
	Listings  handler.ListingQueryInterface
	Watchlist handler.WatchlistServiceInterface
	Users     handler.UserServiceInterface
	Ping      func(ctx context.Context) error
}

// BuildServices wires every service to the same store
func BuildServices(repo *repository.GormRepo) Services {
	return Services{
		Auction:   auction.NewAuctionService(repo),
		Listings:  listings.NewQueryService(repo),
		Watchlist: watchlist.NewWatchlistService(repo),
		Users:     users.NewUserService(repo),
		Ping:      repo.Ping,
	}
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/healthz", healthHandler(svc.Ping))
	router.GET("/metrics", metrics.Handler())

	auctionHandler := handler.NewAuctionHandler(svc.Auction)
	listingHandler := handler.NewListingHandler(svc.Listings)
	userHandler := handler.NewUserHandler(svc.Users, svc.Watchlist)

	api := router.Group("")
	api.Use(IdentityMiddleware(svc.Users))

	usersGroup := api.Group("/users")
	{
		usersGroup.POST("", userHandler.RegisterHandler)
		usersGroup.GET("/:user_id/listings", listingHandler.ListingsByOwnerHandler)
		usersGroup.GET("/:user_id/bids", listingHandler.ListingsBidOnHandler)
	}

	listingsGroup := api.Group("/listings")
	{
		listingsGroup.GET("", listingHandler.ActiveListingsHandler)
		listingsGroup.POST("", auctionHandler.CreateListingHandler)
		listingsGroup.GET("/:listing_id", listingHandler.ListingDetailHandler)
		listingsGroup.POST("/:listing_id/close", auctionHandler.CloseListingHandler)
		listingsGroup.GET("/:listing_id/bids", auctionHandler.GetBidsByListingHandler)
		listingsGroup.GET("/:listing_id/winning", auctionHandler.GetWinningBidHandler)
		listingsGroup.POST("/:listing_id/comments", auctionHandler.AddCommentHandler)
		listingsGroup.GET("/:listing_id/comments", auctionHandler.GetCommentsHandler)
		listingsGroup.GET("/:listing_id/watch", userHandler.WatchStatusHandler)
		listingsGroup.POST("/:listing_id/watch", userHandler.ToggleWatchHandler)
	}

	bids := api.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	api.GET("/watchlist", userHandler.WatchlistHandler)

	categories := api.Group("/categories")
	{
		categories.GET("", listingHandler.CategoriesHandler)
		categories.POST("", listingHandler.CreateCategoryHandler)
		categories.DELETE("/:category_id", listingHandler.DeleteCategoryHandler)
		categories.GET("/:category_id/listings", listingHandler.ListingsByCategoryHandler)
	}

	return router
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				utils.JSONError(c, http.StatusServiceUnavailable, err, "database unavailable")
				return
			}
		}
		utils.JSONResponse(c, http.StatusOK, gin.H{"healthy": true}, "ok")
	}
}
