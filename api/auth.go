package api

import (
	"encoding/base64"
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"
	"github.com/mkharitonov/spacetrips/internal/domain"
	"github.com/mkharitonov/spacetrips/internal/repository"
	"github.com/mkharitonov/spacetrips/internal/service/launches"
)

type AuthHandler struct {
	users    repository.UserRepository
	launches launches.LaunchUseCase
}

type loginRequest struct {
	Email string `json:"email"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

type meResponse struct {
	ID    int64           `json:"id"`
	Email string          `json:"email"`
	Trips []domain.Launch `json:"trips"`
}

func NewAuthHandler(users repository.UserRepository, launches launches.LaunchUseCase) *AuthHandler {
	return &AuthHandler{users: users, launches: launches}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
	router.GET("/me", h.me)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	user, err := h.users.FindOrCreate(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:    user.ID,
		Email: user.Email,
		Token: base64.StdEncoding.EncodeToString([]byte(user.Email)),
	})
}

func (h *AuthHandler) me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	trips, err := h.launches.TripsFor(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meResponse{
		ID:    user.ID,
		Email: user.Email,
		Trips: trips,
	})
}
