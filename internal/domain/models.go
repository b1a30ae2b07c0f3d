package domain

import "time"

// Domain contains the briefing value objects shared across the pipeline.

// TopicID identifies one of the fixed briefing subjects.
type TopicID string

const (
	TopicFiorentina  TopicID = "fiorentina"
	TopicMilan       TopicID = "milan"
	TopicSinner      TopicID = "sinner"
	TopicVolleyMen   TopicID = "volley_m"
	TopicVolleyWomen TopicID = "volley_f"
	TopicMotoGP      TopicID = "motogp"
	TopicF1          TopicID = "f1"
)

// Kind selects the fetch strategy and table shape for a topic.
type Kind string

const (
	KindFootball   Kind = "football"
	KindTennis     Kind = "tennis"
	KindVolleyball Kind = "volleyball"
	KindMotorsport Kind = "motorsport"
)

// Topic describes one briefing subject: its display title, the event-provider
// entity it maps to, its news sources and the table schema its section uses.
type Topic struct {
	ID       TopicID
	Title    string
	Kind     Kind
	TeamID   int // event-provider team/player entity (match topics)
	StageRef int // event-provider unique stage reference (motorsport topics)
	Header   []string
	Feeds    []string // news source keys, in merge order
	Keywords []string // relevance filter; empty means take all
	NewsCap  int      // candidate list bound handed downstream
}

var (
	matchHeader      = []string{"Match", "When", "Competition", "Round"}
	tournamentHeader = []string{"Match", "When", "Tournament", "Round"}
	sessionHeader    = []string{"Session", "Type", "When"}
)

// topics is the fixed enumeration; section order follows this slice everywhere.
var topics = []Topic{
	{ID: TopicFiorentina, Title: "Fiorentina", Kind: KindFootball, TeamID: 2693,
		Header: matchHeader, Feeds: []string{FeedSerieA}, Keywords: []string{"fiorentina"}, NewsCap: 12},
	{ID: TopicMilan, Title: "AC Milan", Kind: KindFootball, TeamID: 2692,
		Header: matchHeader, Feeds: []string{FeedSerieA}, Keywords: []string{"milan"}, NewsCap: 12},
	{ID: TopicSinner, Title: "Jannik Sinner", Kind: KindTennis, TeamID: 206570,
		Header: tournamentHeader, Feeds: []string{FeedTennis}, Keywords: []string{"sinner"}, NewsCap: 12},
	{ID: TopicVolleyMen, Title: "Italia Volley (Men)", Kind: KindVolleyball, TeamID: 6824,
		Header: matchHeader},
	{ID: TopicVolleyWomen, Title: "Italia Volley (Women)", Kind: KindVolleyball, TeamID: 6709,
		Header: matchHeader},
	{ID: TopicMotoGP, Title: "MotoGP", Kind: KindMotorsport, StageRef: 17,
		Header: sessionHeader, Feeds: []string{FeedMotoGP}, NewsCap: 12},
	{ID: TopicF1, Title: "Formula 1", Kind: KindMotorsport, StageRef: 40,
		Header: sessionHeader, Feeds: []string{FeedF1, FeedF1Extra}, NewsCap: 16},
}

// Topics returns the fixed topic list in section order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// TopicByID returns the topic entry for the given id.
func TopicByID(id TopicID) (Topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// News source keys. FeedF1Extra is the scraped HTML source; the rest are RSS.
const (
	FeedSerieA  = "serie_a"
	FeedTennis  = "tennis"
	FeedMotoGP  = "motogp"
	FeedF1      = "f1"
	FeedF1Extra = "f1_extra"
)

// Event is a single upcoming fixture or session, already normalized.
type Event struct {
	Label       string // "Home - Away" or session name
	SessionType string // motorsport session type, empty otherwise
	Competition string
	Round       string
	Start       time.Time
}

// Table is the rendered per-topic schedule.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// NewsCandidate is one unfiltered feed entry awaiting downstream selection.
type NewsCandidate struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
}

// NewsItem is a selected entry with its generated recap.
type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Recap string `json:"recap"`
}

// Section pairs a topic's table with its news. Candidates are populated in the
// gathered payload and dropped by the selection step; News holds the 0-4 final
// picks in the finalized payload.
type Section struct {
	ID         TopicID         `json:"id"`
	Title      string          `json:"title"`
	Table      Table           `json:"table"`
	Candidates []NewsCandidate `json:"candidates,omitempty"`
	News       []NewsItem      `json:"news"`
}

// Payload is the briefing document schema, shared by the gathered and finalized
// stages. Section order matches the topic enumeration order.
type Payload struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Date        string    `json:"date"`
	Timezone    string    `json:"tz"`
	PageTitle   string    `json:"pageTitle"`
	Intro       string    `json:"intro"`
	Sections    []Section `json:"sections"`
}

// MaxNewsPerSection bounds the finalized news list per section.
const MaxNewsPerSection = 4
