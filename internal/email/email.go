package email

import (
	"context"
	"fmt"

	"github.com/mkharitonov/spacetrips/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TripEvent) error {
	switch event.Type {
	case "trip_booked":
		fmt.Printf("send email to %s: booked launches %v\n", event.Email, event.LaunchIDs)
	case "trip_cancelled":
		fmt.Printf("send email to %s: cancelled launches %v\n", event.Email, event.LaunchIDs)
	}
	return nil
}
