package pipeline

import (
	"github.com/google/uuid"

	"github.com/jonathan/company-profiler/internal/types"
)

// EventType identifies a progress event emitted during a research run.
type EventType string

const (
	EventStatus          EventType = "status"
	EventPageScraped     EventType = "page_scraped"
	EventAnalyzing       EventType = "analyzing"
	EventExtracting      EventType = "extracting"
	EventExtractionChunk EventType = "extraction_chunk"
	EventLogoSearch      EventType = "logo_search"
	EventLogoFound       EventType = "logo_found"
	EventComplete        EventType = "complete"
	EventError           EventType = "error"
)

// Event is one progress notification. Every run emits exactly one terminal
// event: a single complete (carrying the profile) or a single error.
type Event struct {
	Type       EventType             `json:"type"`
	RunID      string                `json:"run_id"`
	Message    string                `json:"message,omitempty"`
	URL        string                `json:"url,omitempty"`
	Title      string                `json:"title,omitempty"`
	Chunk      string                `json:"chunk,omitempty"`
	Candidates []types.LogoCandidate `json:"candidates,omitempty"`
	Profile    *types.CompanyProfile `json:"profile,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// IsTerminal reports whether the event ends its run.
func (e Event) IsTerminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}

// ProgressFunc receives events in emission order, on the run's goroutine.
type ProgressFunc func(Event)

// run ties a sequence of events to one research run ID.
type run struct {
	id         string
	onProgress ProgressFunc
}

func newRun(onProgress ProgressFunc) *run {
	return &run{
		id:         uuid.NewString(),
		onProgress: onProgress,
	}
}

func (r *run) emit(event Event) {
	event.RunID = r.id
	if r.onProgress != nil {
		r.onProgress(event)
	}
}

func (r *run) status(message string) {
	r.emit(Event{Type: EventStatus, Message: message})
}

func (r *run) pageScraped(page *types.ScrapedPage) {
	r.emit(Event{Type: EventPageScraped, URL: page.URL, Title: page.Title})
}

func (r *run) complete(profile *types.CompanyProfile) {
	r.emit(Event{Type: EventComplete, Profile: profile})
}

func (r *run) fail(err error) {
	r.emit(Event{Type: EventError, Error: err.Error()})
}
