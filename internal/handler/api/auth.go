package api

import (
	"errors"
	"io"
	"net/http"

	reqdto "flea-market/internal/handler/dto/request"
	resdto "flea-market/internal/handler/dto/response"
	"flea-market/internal/handler/httperr"
	"flea-market/internal/handler/middleware"
	"flea-market/internal/pkg/config"
	"flea-market/internal/pkg/cookie"
	"flea-market/internal/pkg/jwt"
	"flea-market/internal/usecase/commands"
	"flea-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const maxAvatarBytes = 5 << 20

type AuthHandler struct {
	commands   commands.AuthCommands
	queries    queries.UserQueries
	cfg        config.Config
	jwtService *jwt.Service
}

func NewAuthHandler(cmd commands.AuthCommands, q queries.UserQueries, cfg config.Config, jwtService *jwt.Service) *AuthHandler {
	return &AuthHandler{
		commands:   cmd,
		queries:    q,
		cfg:        cfg,
		jwtService: jwtService,
	}
}

// Register accepts multipart form data so an avatar image can accompany the
// account fields.
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	avatar, err := readFormFile(c, "avatar", maxAvatarBytes)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid avatar upload", nil)
		return
	}

	userID, err := h.commands.Register(c.Request.Context(), req, avatar)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
		case errors.Is(err, commands.ErrAuthenticationFailed):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": userID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials), errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errors.Is(err, commands.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		case errors.Is(err, commands.ErrAuthenticationFailed):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	cookie.SetTokenCookie(c, h.cfg.Cookie, result.AccessToken, h.jwtService.TokenDuration())

	c.JSON(http.StatusOK, resdto.LoginResponse{
		UserID:      result.UserID,
		AccessToken: result.AccessToken,
	})
}

// Logout only clears the cookie; JWTs are stateless and expire on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookie(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	view, err := h.queries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserViewNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserView(view))
}

// readFormFile pulls an optional multipart file into memory. Absent files
// return (nil, nil).
func readFormFile(c *gin.Context, field string, maxBytes int64) (*commands.UploadedFile, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if fileHeader.Size > maxBytes {
		return nil, errors.New("uploaded file too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > maxBytes {
		return nil, errors.New("uploaded file too large")
	}

	return &commands.UploadedFile{
		Name:    fileHeader.Filename,
		Content: content,
	}, nil
}
