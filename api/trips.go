package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkharitonov/spacetrips/internal/domain"
	"github.com/mkharitonov/spacetrips/internal/service/launches"
	"github.com/mkharitonov/spacetrips/internal/service/trips"
)

type TripHandler struct {
	trips    trips.TripUseCase
	launches launches.LaunchUseCase
}

type bookTripsRequest struct {
	LaunchIDs []int `json:"launchIds"`
}

// tripUpdateResponse reports the outcome of a booking or cancellation.
// Partial success is not an error: success is false and the message names
// the ids that were not booked.
type tripUpdateResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Launches []domain.Launch `json:"launches"`
}

func NewTripHandler(trips trips.TripUseCase, launches launches.LaunchUseCase) *TripHandler {
	return &TripHandler{trips: trips, launches: launches}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.book)
	router.DELETE("/:launchId", h.cancel)
}

func (h *TripHandler) book(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	var req bookTripsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.LaunchIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "launchIds is required"})
		return
	}

	booked := h.trips.Book(c.Request.Context(), user, req.LaunchIDs)
	launches := h.launches.GetMany(c.Request.Context(), user, booked)

	resp := tripUpdateResponse{
		Success:  len(booked) == len(req.LaunchIDs),
		Message:  "trips booked successfully",
		Launches: launches,
	}
	if !resp.Success {
		resp.Message = fmt.Sprintf("the following launches couldn't be booked: %v", notBooked(req.LaunchIDs, booked))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TripHandler) cancel(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	launchID, err := strconv.Atoi(c.Param("launchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid launch id"})
		return
	}

	if err := h.trips.Cancel(c.Request.Context(), user, launchID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, tripUpdateResponse{
				Success:  false,
				Message:  "trip not found",
				Launches: []domain.Launch{},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tripUpdateResponse{
		Success:  true,
		Message:  "trip cancelled",
		Launches: h.launches.GetMany(c.Request.Context(), user, []int{launchID}),
	})
}

func notBooked(requested, booked []int) []int {
	bookedSet := make(map[int]struct{}, len(booked))
	for _, id := range booked {
		bookedSet[id] = struct{}{}
	}
	missing := make([]int, 0)
	for _, id := range requested {
		if _, ok := bookedSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
