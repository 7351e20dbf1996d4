package trips

import (
	"context"
	"log"

	"github.com/mkharitonov/spacetrips/internal/domain"
	"github.com/mkharitonov/spacetrips/internal/kafka"
	"github.com/mkharitonov/spacetrips/internal/repository"
)

type TripUseCase interface {
	IsBooked(ctx context.Context, userID int64, launchID int) bool
	BookedLaunchIDs(ctx context.Context, userID int64) ([]int, error)
	Book(ctx context.Context, user *domain.User, launchIDs []int) []int
	Cancel(ctx context.Context, user *domain.User, launchID int) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TripService struct {
	trips              repository.TripRepository
	producer           Producer
	notificationsTopic string
}

type TripServiceOption func(*TripService)

func WithNotifications(producer Producer, topic string) TripServiceOption {
	return func(s *TripService) {
		s.producer = producer
		s.notificationsTopic = topic
	}
}

func NewTripService(trips repository.TripRepository, opts ...TripServiceOption) *TripService {
	service := &TripService{trips: trips}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// IsBooked reports whether the user holds a booking for the launch. Lookup
// errors degrade to false; a read failure must not fail the listing that
// asked for the annotation.
func (s *TripService) IsBooked(ctx context.Context, userID int64, launchID int) bool {
	booked, err := s.trips.ListForUser(ctx, userID)
	if err != nil {
		log.Printf("trips: list for user %d: %v", userID, err)
		return false
	}
	for _, t := range booked {
		if t.LaunchID == launchID {
			return true
		}
	}
	return false
}

func (s *TripService) BookedLaunchIDs(ctx context.Context, userID int64) ([]int, error) {
	trips, err := s.trips.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.LaunchID)
	}
	return ids, nil
}

// Book records a booking for each launch id, best effort: ids that fail are
// left out of the returned slice and the rest succeed. Rebooking an already
// booked launch is absorbed by the repository upsert, so the id still counts
// as booked. Partial success is reported through the shorter result, never
// as an error.
func (s *TripService) Book(ctx context.Context, user *domain.User, launchIDs []int) []int {
	booked := make([]int, 0, len(launchIDs))
	for _, id := range launchIDs {
		if _, err := s.trips.FindOrCreate(ctx, user.ID, id); err != nil {
			log.Printf("trips: book launch %d for user %d: %v", id, user.ID, err)
			continue
		}
		booked = append(booked, id)
	}

	if len(booked) > 0 {
		s.publish(ctx, "trip_booked", user, booked)
	}
	return booked
}

// Cancel removes the user's booking for the launch. Returns
// domain.ErrNotFound when no such booking exists.
func (s *TripService) Cancel(ctx context.Context, user *domain.User, launchID int) error {
	if err := s.trips.Delete(ctx, user.ID, launchID); err != nil {
		return err
	}
	s.publish(ctx, "trip_cancelled", user, []int{launchID})
	return nil
}

func (s *TripService) publish(ctx context.Context, eventType string, user *domain.User, launchIDs []int) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	event := kafka.TripEvent{
		Type:      eventType,
		UserID:    user.ID,
		Email:     user.Email,
		LaunchIDs: launchIDs,
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, user.Email, event); err != nil {
		log.Printf("trips: publish %s event for user %d: %v", eventType, user.ID, err)
	}
}

var _ TripUseCase = (*TripService)(nil)
