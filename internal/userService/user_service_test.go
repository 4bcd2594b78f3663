package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"
	"commerce/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewUserService(mockRepo).WithHashCost(bcrypt.MinCost)
	ctx := context.Background()

	valid := RegisterInput{Username: "alice", Email: "alice@example.com", Password: "s3cretpass", Confirmation: "s3cretpass"}

	tests := []struct {
		name          string
		input         RegisterInput
		mockSetup     func()
		expectedError error
	}{
		{
			name:  "valid",
			input: valid,
			mockSetup: func() {
				mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).Return(nil)
			},
		},
		{
			name:  "username_taken",
			input: valid,
			mockSetup: func() {
				mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).Return(auctionerrors.ErrUsernameTaken)
			},
			expectedError: auctionerrors.ErrConflict,
		},
		{
			name:          "passwords_differ",
			input:         RegisterInput{Username: "alice", Password: "s3cretpass", Confirmation: "s3cretpasS"},
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidAccount,
		},
		{
			name:          "password_too_short",
			input:         RegisterInput{Username: "alice", Password: "short", Confirmation: "short"},
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidAccount,
		},
		{
			name:          "bad_username",
			input:         RegisterInput{Username: "al ice", Password: "s3cretpass", Confirmation: "s3cretpass"},
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrValidation,
		},
		{
			name:          "bad_email",
			input:         RegisterInput{Username: "alice", Email: "nope", Password: "s3cretpass", Confirmation: "s3cretpass"},
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			user, err := service.Register(ctx, tc.input)
			if tc.expectedError != nil {
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "alice", user.Username)
			require.NotEmpty(t, user.ID)
			require.False(t, strings.Contains(user.PasswordHash, tc.input.Password))
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tc.input.Password)))
			require.Error(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("wrong")))
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewUserService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().GetUser(ctx, "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil)
	user, err := service.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	mockRepo.EXPECT().GetUser(ctx, "ghost").Return(nil, auctionerrors.ErrUserNotFound)
	_, err = service.GetUser(ctx, "ghost")
	require.ErrorIs(t, err, auctionerrors.ErrNotFound)

	_, err = service.GetUser(ctx, "")
	require.ErrorIs(t, err, auctionerrors.ErrValidation)
}
