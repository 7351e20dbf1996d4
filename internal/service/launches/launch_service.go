package launches

import (
	"context"
	"log"
	"sync"

	"github.com/mkharitonov/spacetrips/internal/domain"
	"github.com/mkharitonov/spacetrips/internal/pagination"
)

type LaunchUseCase interface {
	List(ctx context.Context, user *domain.User, after string, pageSize int) domain.LaunchConnection
	Get(ctx context.Context, user *domain.User, id int) (*domain.Launch, error)
	GetMany(ctx context.Context, user *domain.User, ids []int) []domain.Launch
	TripsFor(ctx context.Context, user *domain.User) ([]domain.Launch, error)
}

// Catalog is the upstream launch source. FetchAll degrades to an empty slice
// on upstream failure, so listing never errors.
type Catalog interface {
	FetchAll(ctx context.Context) []domain.Launch
	FetchByID(ctx context.Context, id int) (*domain.Launch, error)
	FetchByIDs(ctx context.Context, ids []int) []domain.Launch
}

type Bookings interface {
	IsBooked(ctx context.Context, userID int64, launchID int) bool
	BookedLaunchIDs(ctx context.Context, userID int64) ([]int, error)
}

type Cache interface {
	GetLaunches(ctx context.Context) ([]domain.Launch, error)
	SetLaunches(ctx context.Context, launches []domain.Launch) error
}

type LaunchService struct {
	catalog  Catalog
	bookings Bookings
	cache    Cache
}

func NewLaunchService(catalog Catalog, bookings Bookings, cache Cache) *LaunchService {
	return &LaunchService{catalog: catalog, bookings: bookings, cache: cache}
}

// List returns one page of launches in reverse-chronological order,
// annotated with the booked flag for user. A nil user means every launch
// reads as not booked. Cursor and HasMore come straight from the paginator.
func (s *LaunchService) List(ctx context.Context, user *domain.User, after string, pageSize int) domain.LaunchConnection {
	all := s.allLaunches(ctx)

	// Upstream returns oldest first; we serve most recent first. The
	// ordering is fixed policy, not configurable.
	reversed := make([]domain.Launch, len(all))
	for i, launch := range all {
		reversed[len(all)-1-i] = launch
	}

	page := pagination.Paginate(reversed, after, pageSize, func(l domain.Launch) string {
		return l.Cursor
	})

	s.annotateBooked(ctx, user, page.Items)

	return domain.LaunchConnection{
		Launches: page.Items,
		Cursor:   page.Cursor,
		HasMore:  page.HasMore,
	}
}

func (s *LaunchService) Get(ctx context.Context, user *domain.User, id int) (*domain.Launch, error) {
	launch, err := s.catalog.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		launch.IsBooked = s.bookings.IsBooked(ctx, user.ID, launch.ID)
	}
	return launch, nil
}

// GetMany resolves launches by id, preserving input order and omitting ids
// the catalog cannot resolve, with the booked flag annotated for user.
func (s *LaunchService) GetMany(ctx context.Context, user *domain.User, ids []int) []domain.Launch {
	launches := s.catalog.FetchByIDs(ctx, ids)
	s.annotateBooked(ctx, user, launches)
	return launches
}

// TripsFor resolves the launches the user has booked, in booking order.
func (s *LaunchService) TripsFor(ctx context.Context, user *domain.User) ([]domain.Launch, error) {
	ids, err := s.bookings.BookedLaunchIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	launches := s.catalog.FetchByIDs(ctx, ids)
	for i := range launches {
		launches[i].IsBooked = true
	}
	return launches, nil
}

func (s *LaunchService) allLaunches(ctx context.Context) []domain.Launch {
	if s.cache != nil {
		if cached, err := s.cache.GetLaunches(ctx); err == nil && cached != nil {
			return cached
		} else if err != nil {
			log.Printf("launches: cache read: %v", err)
		}
	}

	launches := s.catalog.FetchAll(ctx)
	if s.cache != nil && len(launches) > 0 {
		if err := s.cache.SetLaunches(ctx, launches); err != nil {
			log.Printf("launches: cache write: %v", err)
		}
	}
	return launches
}

// annotateBooked resolves the booked flag for each page item. Lookups are
// independent reads, so they run concurrently, bounded by the page size.
func (s *LaunchService) annotateBooked(ctx context.Context, user *domain.User, items []domain.Launch) {
	if user == nil {
		return
	}

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			items[i].IsBooked = s.bookings.IsBooked(ctx, user.ID, items[i].ID)
		}(i)
	}
	wg.Wait()
}

var _ LaunchUseCase = (*LaunchService)(nil)
