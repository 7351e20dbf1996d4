package catalog

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/mkharitonov/spacetrips/internal/domain"
	"github.com/stretchr/testify/assert"
)

// fakeTransport serves canned bodies keyed by the flight_number query value;
// key "" serves the unfiltered listing.
type fakeTransport struct {
	responses map[string][]byte
	err       error
}

func (f *fakeTransport) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[query.Get("flight_number")], nil
}

const launchesBody = `[
	{
		"flight_number": 1,
		"launch_date_unix": 100,
		"launch_site": {"site_name": "kwajalein_atoll"},
		"mission_name": "FalconSat",
		"links": {"mission_patch_small": "small.png", "mission_patch": "large.png"},
		"rocket": {"rocket_id": "falcon1", "rocket_name": "Falcon 1", "rocket_type": "Merlin A"}
	},
	{
		"flight_number": 2,
		"launch_date_unix": 200,
		"mission_name": "DemoSat"
	}
]`

func TestFetchAll_NormalizesRecords(t *testing.T) {
	transport := &fakeTransport{responses: map[string][]byte{"": []byte(launchesBody)}}
	api := NewLaunchAPI(transport)

	launches := api.FetchAll(context.Background())

	assert.Len(t, launches, 2)
	assert.Equal(t, domain.Launch{
		ID:     1,
		Cursor: "100",
		Site:   "kwajalein_atoll",
		Mission: domain.Mission{
			Name:              "FalconSat",
			MissionPatchSmall: "small.png",
			MissionPatchLarge: "large.png",
		},
		Rocket: domain.Rocket{ID: "falcon1", Name: "Falcon 1", Type: "Merlin A"},
	}, launches[0])
}

func TestFetchAll_MissingNestedFieldsKeepRecord(t *testing.T) {
	transport := &fakeTransport{responses: map[string][]byte{"": []byte(launchesBody)}}
	api := NewLaunchAPI(transport)

	launches := api.FetchAll(context.Background())

	assert.Equal(t, 2, launches[1].ID)
	assert.Equal(t, "200", launches[1].Cursor)
	assert.Equal(t, "", launches[1].Site)
	assert.Equal(t, domain.Rocket{}, launches[1].Rocket)
}

func TestFetchAll_DefaultsMissingID(t *testing.T) {
	body := `[{"launch_date_unix": 300, "mission_name": "Mystery"}]`
	transport := &fakeTransport{responses: map[string][]byte{"": []byte(body)}}
	api := NewLaunchAPI(transport)

	launches := api.FetchAll(context.Background())

	assert.Len(t, launches, 1)
	assert.Equal(t, 0, launches[0].ID)
}

func TestFetchAll_DegradesToEmpty(t *testing.T) {
	testCases := []struct {
		name      string
		transport *fakeTransport
	}{
		{
			name:      "transport error",
			transport: &fakeTransport{err: errors.New("connection refused")},
		},
		{
			name:      "non-array payload",
			transport: &fakeTransport{responses: map[string][]byte{"": []byte(`{"error": "down"}`)}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := NewLaunchAPI(tc.transport)
			launches := api.FetchAll(context.Background())
			assert.NotNil(t, launches)
			assert.Empty(t, launches)
		})
	}
}

func TestFetchByID(t *testing.T) {
	transport := &fakeTransport{responses: map[string][]byte{
		"5": []byte(`[{"flight_number": 5, "launch_date_unix": 500, "mission_name": "RatSat"}]`),
		"9": []byte(`[]`),
	}}
	api := NewLaunchAPI(transport)

	launch, err := api.FetchByID(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, launch.ID)
	assert.Equal(t, "RatSat", launch.Mission.Name)

	_, err = api.FetchByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchByIDs_InputOrderAndOmission(t *testing.T) {
	transport := &fakeTransport{responses: map[string][]byte{
		"3": []byte(`[{"flight_number": 3, "launch_date_unix": 300}]`),
		"1": []byte(`[{"flight_number": 1, "launch_date_unix": 100}]`),
		"9": []byte(`[]`),
	}}
	api := NewLaunchAPI(transport)

	launches := api.FetchByIDs(context.Background(), []int{3, 9, 1})

	assert.Len(t, launches, 2)
	assert.Equal(t, 3, launches[0].ID)
	assert.Equal(t, 1, launches[1].ID)
}
