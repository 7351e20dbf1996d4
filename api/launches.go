package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkharitonov/spacetrips/internal/domain"
	"github.com/mkharitonov/spacetrips/internal/service/launches"
)

type LaunchHandler struct {
	service launches.LaunchUseCase
}

type launchesResponse struct {
	Launches []domain.Launch `json:"launches"`
	Cursor   *string         `json:"cursor"`
	HasMore  bool            `json:"hasMore"`
}

func NewLaunchHandler(service launches.LaunchUseCase) *LaunchHandler {
	return &LaunchHandler{service: service}
}

func (h *LaunchHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *LaunchHandler) list(c *gin.Context) {
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	after := c.Query("after")

	conn := h.service.List(c.Request.Context(), currentUser(c), after, pageSize)

	resp := launchesResponse{
		Launches: conn.Launches,
		HasMore:  conn.HasMore,
	}
	if conn.Cursor != "" {
		resp.Cursor = &conn.Cursor
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LaunchHandler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	launch, err := h.service.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "launch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, launch)
}
