package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"
	"commerce/services/auction/handler"
	"commerce/services/auction/helpers"
	"commerce/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestIdentityMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := handler.NewMockUserServiceInterface(ctrl)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(IdentityMiddleware(mockUsers))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, helpers.CurrentUserID(c))
	})

	known := utils.GenerateID()
	ghost := utils.GenerateID()

	tests := []struct {
		name           string
		header         string
		mockSetup      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "anonymous",
			mockSetup:      func() {},
			expectedStatus: http.StatusOK,
			expectedBody:   "",
		},
		{
			name:   "known_user",
			header: known,
			mockSetup: func() {
				mockUsers.EXPECT().GetUser(gomock.Any(), known).Return(models.User{ID: known}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   known,
		},
		{
			name:   "unknown_user",
			header: ghost,
			mockSetup: func() {
				mockUsers.EXPECT().GetUser(gomock.Any(), ghost).Return(models.User{}, auctionerrors.ErrUserNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			// no lookup: the mock would fail the test on an unexpected call
			name:           "malformed_id",
			header:         "not-a-uuid",
			mockSetup:      func() {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "lookup_failure",
			header: known,
			mockSetup: func() {
				mockUsers.EXPECT().GetUser(gomock.Any(), known).Return(models.User{}, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set(helpers.UserHeader, tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			if w.Code == http.StatusOK {
				require.Equal(t, tc.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	healthy := SetupRouter(Services{Ping: func(context.Context) error { return nil }})
	w := httptest.NewRecorder()
	healthy.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	down := SetupRouter(Services{Ping: func(context.Context) error { return errors.New("no route to host") }})
	w = httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "database unavailable", resp["message"])
}
