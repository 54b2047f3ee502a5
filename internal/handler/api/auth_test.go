//go:build unit

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"flea-market/internal/handler/api"
	"flea-market/internal/pkg/config"
	"flea-market/internal/pkg/jwt"
	"flea-market/internal/usecase/commands"
	"flea-market/internal/usecase/queries"
	"flea-market/tests/common/httptest"
	commandsmock "flea-market/tests/mock/commands"
	queriesmock "flea-market/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const tokenDuration = 12 * time.Hour

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	jwtService   *jwt.Service
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.jwtService = jwt.NewService("test-secret", tokenDuration)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, config.NewTestConfig(), s.jwtService)

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", uuid.New())
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AuthHandlerTestSuite) TestLogin_Success() {
	userID := uuid.New()
	s.mockCommands.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&commands.LoginResult{UserID: userID, AccessToken: "signed-token"}, nil)

	body := map[string]string{"email": "seller@example.com", "password": "password123"}
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")

	var resp struct {
		UserID      uuid.UUID `json:"user_id"`
		AccessToken string    `json:"access_token"`
	}
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal(userID, resp.UserID)
	s.Equal("signed-token", resp.AccessToken)
	setCookie := w.Header().Get("Set-Cookie")
	s.NotEmpty(setCookie, "login must set the token cookie")
	s.Contains(setCookie, fmt.Sprintf("Max-Age=%d", int(tokenDuration.Seconds())),
		"cookie lifetime must match the token lifetime")
}

func (s *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	s.mockCommands.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, commands.ErrInvalidCredentials)

	body := map[string]string{"email": "seller@example.com", "password": "wrongpassword"}
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
}

func (s *AuthHandlerTestSuite) TestLogin_MalformedBody() {
	body := map[string]string{"email": "not-an-email", "password": "short"}
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AuthHandlerTestSuite) TestMe_Success() {
	view := &queries.UserView{
		ID:        uuid.New(),
		Email:     "seller@example.com",
		FirstName: "Ana",
		LastName:  "Vargas",
		IsActive:  true,
	}
	s.mockQueries.EXPECT().
		GetCurrentUser(gomock.Any(), gomock.Any()).
		Return(view, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "token")

	var resp struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	}
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal(view.ID, resp.ID)
	s.Equal(view.Email, resp.Email)
}

func (s *AuthHandlerTestSuite) TestMe_NotFound() {
	s.mockQueries.EXPECT().
		GetCurrentUser(gomock.Any(), gomock.Any()).
		Return(nil, queries.ErrUserViewNotFound)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "token")
	httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "User not found")
}

func (s *AuthHandlerTestSuite) TestMe_Unauthenticated() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestLogout_ClearsCookie() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "token")
	s.Equal(http.StatusNoContent, w.Code)
	s.Contains(w.Header().Get("Set-Cookie"), "access_token=")
}

func (s *AuthHandlerTestSuite) TestLogin_UnexpectedError() {
	s.mockCommands.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	body := map[string]string{"email": "seller@example.com", "password": "password123"}
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
