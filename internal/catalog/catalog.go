// Package catalog fetches launches from the upstream SpaceX catalog and
// normalizes them into the flat domain.Launch shape.
package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strconv"
	"sync"

	"github.com/mkharitonov/spacetrips/internal/domain"
)

// Transport issues a GET against the upstream API and returns the raw body.
// The production implementation is spacex.Client; tests inject a fake.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

type LaunchAPI struct {
	transport Transport
}

func NewLaunchAPI(transport Transport) *LaunchAPI {
	return &LaunchAPI{transport: transport}
}

// upstreamLaunch matches the wire shape of the v2 launches endpoint. Only
// the fields the reducer needs are declared.
type upstreamLaunch struct {
	FlightNumber   int    `json:"flight_number"`
	LaunchDateUnix int64  `json:"launch_date_unix"`
	LaunchSite     *struct {
		SiteName string `json:"site_name"`
	} `json:"launch_site"`
	MissionName string `json:"mission_name"`
	Links       *struct {
		MissionPatchSmall string `json:"mission_patch_small"`
		MissionPatch      string `json:"mission_patch"`
	} `json:"links"`
	Rocket *struct {
		RocketID   string `json:"rocket_id"`
		RocketName string `json:"rocket_name"`
		RocketType string `json:"rocket_type"`
	} `json:"rocket"`
}

// reduceLaunch flattens one upstream record into a domain.Launch. Missing or
// malformed nested fields produce empty sub-fields; a record is never
// dropped. The cursor is the upstream launch timestamp rendered as a decimal
// string, which is stable for a given record across calls.
func reduceLaunch(up upstreamLaunch) domain.Launch {
	launch := domain.Launch{
		ID:     up.FlightNumber,
		Cursor: strconv.FormatInt(up.LaunchDateUnix, 10),
		Mission: domain.Mission{
			Name: up.MissionName,
		},
	}
	if up.LaunchSite != nil {
		launch.Site = up.LaunchSite.SiteName
	}
	if up.Links != nil {
		launch.Mission.MissionPatchSmall = up.Links.MissionPatchSmall
		launch.Mission.MissionPatchLarge = up.Links.MissionPatch
	}
	if up.Rocket != nil {
		launch.Rocket = domain.Rocket{
			ID:   up.Rocket.RocketID,
			Name: up.Rocket.RocketName,
			Type: up.Rocket.RocketType,
		}
	}
	return launch
}

// FetchAll returns every launch in upstream order. A transport failure or a
// payload that is not a JSON array degrades to an empty list rather than an
// error; the aggregation layer treats that the same as an empty catalog.
func (a *LaunchAPI) FetchAll(ctx context.Context) []domain.Launch {
	body, err := a.transport.Get(ctx, "launches", nil)
	if err != nil {
		log.Printf("catalog: fetch all launches: %v", err)
		return []domain.Launch{}
	}

	var upstream []upstreamLaunch
	if err := json.Unmarshal(body, &upstream); err != nil {
		log.Printf("catalog: decode launches payload: %v", err)
		return []domain.Launch{}
	}

	launches := make([]domain.Launch, len(upstream))
	for i, up := range upstream {
		launches[i] = reduceLaunch(up)
	}
	return launches
}

// FetchByID looks up a single launch by flight number. Returns
// domain.ErrNotFound when upstream has no such launch.
func (a *LaunchAPI) FetchByID(ctx context.Context, id int) (*domain.Launch, error) {
	query := url.Values{"flight_number": []string{strconv.Itoa(id)}}
	body, err := a.transport.Get(ctx, "launches", query)
	if err != nil {
		return nil, err
	}

	var upstream []upstreamLaunch
	if err := json.Unmarshal(body, &upstream); err != nil {
		return nil, err
	}
	if len(upstream) == 0 {
		return nil, domain.ErrNotFound
	}

	launch := reduceLaunch(upstream[0])
	return &launch, nil
}

// FetchByIDs resolves many launches with one upstream call per id, issued
// concurrently, and reassembles the results in input order. Ids that fail to
// resolve are omitted.
func (a *LaunchAPI) FetchByIDs(ctx context.Context, ids []int) []domain.Launch {
	results := make([]*domain.Launch, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			launch, err := a.FetchByID(ctx, id)
			if err != nil {
				log.Printf("catalog: fetch launch %d: %v", id, err)
				return
			}
			results[i] = launch
		}(i, id)
	}
	wg.Wait()

	launches := make([]domain.Launch, 0, len(ids))
	for _, launch := range results {
		if launch != nil {
			launches = append(launches, *launch)
		}
	}
	return launches
}
