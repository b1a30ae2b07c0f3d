package notify

import "time"

// Event announces a published briefing to downstream sinks.
type Event struct {
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	PageURL     string    `json:"page_url"`
	Created     bool      `json:"created"`
	Sections    int       `json:"sections"`
	NewsItems   int       `json:"news_items"`
	PublishedAt time.Time `json:"published_at"`
}

// NewEvent constructs an Event for a freshly published briefing page.
func NewEvent(title, date, pageURL string, created bool, sections, newsItems int) Event {
	return Event{
		Title:       title,
		Date:        date,
		PageURL:     pageURL,
		Created:     created,
		Sections:    sections,
		NewsItems:   newsItems,
		PublishedAt: time.Now().UTC(),
	}
}
