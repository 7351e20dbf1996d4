package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkharitonov/spacetrips/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTripUseCase is a mock implementation of trips.TripUseCase.
type MockTripUseCase struct {
	mock.Mock
}

func (m *MockTripUseCase) IsBooked(ctx context.Context, userID int64, launchID int) bool {
	args := m.Called(ctx, userID, launchID)
	return args.Bool(0)
}

func (m *MockTripUseCase) BookedLaunchIDs(ctx context.Context, userID int64) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockTripUseCase) Book(ctx context.Context, user *domain.User, launchIDs []int) []int {
	args := m.Called(ctx, user, launchIDs)
	return args.Get(0).([]int)
}

func (m *MockTripUseCase) Cancel(ctx context.Context, user *domain.User, launchID int) error {
	args := m.Called(ctx, user, launchID)
	return args.Error(0)
}

func authedContext(t *testing.T, w *httptest.ResponseRecorder, method, target, body string) (*gin.Context, *domain.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	if body != "" {
		c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}

	user := &domain.User{ID: 7, Email: "astro@example.com"}
	c.Set(userContextKey, user)
	return c, user
}

func TestTripHandler_book_AllBooked(t *testing.T) {
	mockTrips := &MockTripUseCase{}
	mockLaunches := &MockLaunchUseCase{}
	handler := NewTripHandler(mockTrips, mockLaunches)

	w := httptest.NewRecorder()
	c, user := authedContext(t, w, "POST", "/trips", `{"launchIds": [1, 2]}`)

	mockTrips.On("Book", c.Request.Context(), user, []int{1, 2}).Return([]int{1, 2})
	mockLaunches.On("GetMany", c.Request.Context(), user, []int{1, 2}).Return([]domain.Launch{
		{ID: 1, Cursor: "10", IsBooked: true},
		{ID: 2, Cursor: "20", IsBooked: true},
	})

	handler.book(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp tripUpdateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "trips booked successfully", resp.Message)
	assert.Len(t, resp.Launches, 2)

	mockTrips.AssertExpectations(t)
	mockLaunches.AssertExpectations(t)
}

func TestTripHandler_book_PartialFailureListsUnbooked(t *testing.T) {
	mockTrips := &MockTripUseCase{}
	mockLaunches := &MockLaunchUseCase{}
	handler := NewTripHandler(mockTrips, mockLaunches)

	w := httptest.NewRecorder()
	c, user := authedContext(t, w, "POST", "/trips", `{"launchIds": [1, 2]}`)

	mockTrips.On("Book", c.Request.Context(), user, []int{1, 2}).Return([]int{1})
	mockLaunches.On("GetMany", c.Request.Context(), user, []int{1}).Return([]domain.Launch{
		{ID: 1, Cursor: "10", IsBooked: true},
	})

	handler.book(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp tripUpdateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "couldn't be booked")
	assert.Contains(t, resp.Message, "2")
}

func TestTripHandler_book_Unauthenticated(t *testing.T) {
	handler := NewTripHandler(&MockTripUseCase{}, &MockLaunchUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/trips", strings.NewReader(`{"launchIds": [1]}`))

	handler.book(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTripHandler_cancel(t *testing.T) {
	mockTrips := &MockTripUseCase{}
	mockLaunches := &MockLaunchUseCase{}
	handler := NewTripHandler(mockTrips, mockLaunches)

	w := httptest.NewRecorder()
	c, user := authedContext(t, w, "DELETE", "/trips/3", "")
	c.Params = gin.Params{{Key: "launchId", Value: "3"}}

	mockTrips.On("Cancel", c.Request.Context(), user, 3).Return(nil)
	mockLaunches.On("GetMany", c.Request.Context(), user, []int{3}).Return([]domain.Launch{
		{ID: 3, Cursor: "30"},
	})

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp tripUpdateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "trip cancelled", resp.Message)
	assert.Len(t, resp.Launches, 1)
}

func TestTripHandler_cancel_NotFound(t *testing.T) {
	mockTrips := &MockTripUseCase{}
	handler := NewTripHandler(mockTrips, &MockLaunchUseCase{})

	w := httptest.NewRecorder()
	c, user := authedContext(t, w, "DELETE", "/trips/3", "")
	c.Params = gin.Params{{Key: "launchId", Value: "3"}}

	mockTrips.On("Cancel", c.Request.Context(), user, 3).Return(domain.ErrNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp tripUpdateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}
