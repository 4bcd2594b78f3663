package watchlist

import (
	"context"
	"errors"
	"testing"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"
	"commerce/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestWatchlistService_ToggleWatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewWatchlistService(mockRepo)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        string
		listingID     string
		mockSetup     func()
		want          bool
		expectedError error
	}{
		{
			name:      "watch",
			userID:    "user1",
			listingID: "listing1",
			mockSetup: func() {
				mockRepo.EXPECT().ToggleWatch(ctx, "user1", "listing1").Return(true, nil)
			},
			want: true,
		},
		{
			name:      "unwatch",
			userID:    "user1",
			listingID: "listing1",
			mockSetup: func() {
				mockRepo.EXPECT().ToggleWatch(ctx, "user1", "listing1").Return(false, nil)
			},
			want: false,
		},
		{
			name:      "listing_not_found",
			userID:    "user1",
			listingID: "missing",
			mockSetup: func() {
				mockRepo.EXPECT().ToggleWatch(ctx, "user1", "missing").Return(false, auctionerrors.ErrListingNotFound)
			},
			expectedError: auctionerrors.ErrNotFound,
		},
		{
			name:          "empty_user",
			userID:        "",
			listingID:     "listing1",
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			watching, err := service.ToggleWatch(ctx, tc.userID, tc.listingID)
			if tc.expectedError != nil {
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, watching)
		})
	}
}

func TestWatchlistService_ListWatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewWatchlistService(mockRepo)
	ctx := context.Background()

	watched := []models.Listing{{ID: "l2", Active: false}, {ID: "l1", Active: true}}
	mockRepo.EXPECT().FindListings(ctx, repository.ListingFilter{WatcherID: "user1"}).Return(watched, nil)

	listings, err := service.ListWatched(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, watched, listings)

	_, err = service.ListWatched(ctx, "")
	require.ErrorIs(t, err, auctionerrors.ErrValidation)
}

func TestWatchlistService_IsWatching(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewWatchlistService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().IsWatching(ctx, "user1", "listing1").Return(true, nil)
	watching, err := service.IsWatching(ctx, "user1", "listing1")
	require.NoError(t, err)
	require.True(t, watching)

	// anonymous viewers never watch anything
	watching, err = service.IsWatching(ctx, "", "listing1")
	require.NoError(t, err)
	require.False(t, watching)
}
