package sofascore

// Wire types for the subset of the event-provider API the briefing consumes.

// Team is a club, national team or player entity.
type Team struct {
	Name string `json:"name"`
}

// Category groups tournaments and stages (e.g. "International", "Formula 1").
type Category struct {
	Name string `json:"name"`
}

// UniqueTournament is the season-independent tournament identity.
type UniqueTournament struct {
	Name     string    `json:"name"`
	Category *Category `json:"category"`
}

// Tournament is the per-season tournament an event belongs to.
type Tournament struct {
	Name             string            `json:"name"`
	Category         *Category         `json:"category"`
	UniqueTournament *UniqueTournament `json:"uniqueTournament"`
}

// RoundInfo carries the round number when the provider exposes one.
type RoundInfo struct {
	Round int `json:"round"`
}

// Status reports the provider's lifecycle state for an event or stage.
type Status struct {
	Type string `json:"type"` // notstarted, inprogress, finished, ...
}

// Event is a fixture as returned by the team event endpoints.
type Event struct {
	HomeTeam       *Team       `json:"homeTeam"`
	AwayTeam       *Team       `json:"awayTeam"`
	Tournament     *Tournament `json:"tournament"`
	RoundInfo      *RoundInfo  `json:"roundInfo"`
	Status         *Status     `json:"status"`
	StartTimestamp int64       `json:"startTimestamp"`
}

// CompetitionName resolves the display competition, preferring the unique
// tournament name as the provider does in its own UI.
func (e Event) CompetitionName() string {
	if e.Tournament == nil {
		return ""
	}
	if e.Tournament.UniqueTournament != nil && e.Tournament.UniqueTournament.Name != "" {
		return e.Tournament.UniqueTournament.Name
	}
	return e.Tournament.Name
}

// CategoryName resolves the tournament category from either level.
func (e Event) CategoryName() string {
	if e.Tournament == nil {
		return ""
	}
	if e.Tournament.Category != nil && e.Tournament.Category.Name != "" {
		return e.Tournament.Category.Name
	}
	if e.Tournament.UniqueTournament != nil && e.Tournament.UniqueTournament.Category != nil {
		return e.Tournament.UniqueTournament.Category.Name
	}
	return ""
}

// StatusType returns the event status type, empty when absent.
func (e Event) StatusType() string {
	if e.Status == nil {
		return ""
	}
	return e.Status.Type
}

// StageType labels a motorsport session (Practice, Qualifying, Race, ...).
type StageType struct {
	Name string `json:"name"`
}

// Stage is a motorsport race weekend or one of its sessions.
type Stage struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Type               *StageType `json:"type"`
	Status             *Status    `json:"status"`
	Category           *Category  `json:"category"`
	StartTimestamp     int64      `json:"startTimestamp"`
	StartDateTimestamp int64      `json:"startDateTimestamp"`
	EndDateTimestamp   int64      `json:"endDateTimestamp"`
}

// DisplayName falls back to the description when the stage has no name.
func (s Stage) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Description
}

// StatusType returns the stage status type, empty when absent.
func (s Stage) StatusType() string {
	if s.Status == nil {
		return ""
	}
	return s.Status.Type
}

// StartUnix returns whichever start timestamp the endpoint populated.
func (s Stage) StartUnix() int64 {
	if s.StartDateTimestamp != 0 {
		return s.StartDateTimestamp
	}
	return s.StartTimestamp
}

type eventsResponse struct {
	Events []Event `json:"events"`
}

type stageResponse struct {
	Stage Stage `json:"stage"`
}

type substagesResponse struct {
	Stages []Stage `json:"stages"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Type   string `json:"type"`
	Entity Stage  `json:"entity"`
}
