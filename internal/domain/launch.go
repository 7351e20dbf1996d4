package domain

// Mission describes the mission flown on a launch. Patch URLs come straight
// from the upstream catalog and may be empty.
type Mission struct {
	Name              string `json:"name"`
	MissionPatchSmall string `json:"missionPatchSmall"`
	MissionPatchLarge string `json:"missionPatchLarge"`
}

type Rocket struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Launch is the normalized catalog record. It is built fresh on every fetch
// and never mutated afterwards. Cursor is an opaque, stable token derived
// from the upstream launch timestamp.
type Launch struct {
	ID       int     `json:"id"`
	Cursor   string  `json:"cursor"`
	Site     string  `json:"site"`
	Mission  Mission `json:"mission"`
	Rocket   Rocket  `json:"rocket"`
	IsBooked bool    `json:"isBooked"`
}

// LaunchConnection is one page of launches. Cursor is empty when the page is
// empty; the API layer serializes that as null.
type LaunchConnection struct {
	Launches []Launch
	Cursor   string
	HasMore  bool
}
