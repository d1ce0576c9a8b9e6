package webcollage

// EventType identifies what happened during a crawl.
type EventType int

const (
	// EventAdmitted is recorded when a URL enters the frontier.
	EventAdmitted EventType = iota
	// EventPageScanned is recorded after links were extracted from a page.
	EventPageScanned
	// EventImageQueued is recorded when a worker hands an image to the delivery channel.
	EventImageQueued
	// EventImageDelivered is recorded after the sink was given an image.
	EventImageDelivered
	// EventFailed is recorded when a URL is dropped; Err carries the code.
	EventFailed
)

// String returns a lowercase name for the event type.
func (t EventType) String() string {
	switch t {
	case EventAdmitted:
		return "admitted"
	case EventPageScanned:
		return "page_scanned"
	case EventImageQueued:
		return "image_queued"
	case EventImageDelivered:
		return "image_delivered"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event reports progress of a crawl.
type Event struct {
	Type EventType
	URL  string

	// Links and Lines are set for EventPageScanned.
	Links int
	Lines int

	// Pending and Buffered are queue depths, set for EventImageDelivered.
	Pending  int
	Buffered int

	Err error
}

// Recorder observes crawl events. Implementations must be safe for
// concurrent use; every worker records through the same Recorder.
type Recorder interface {
	Record(event Event)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(event Event)

// Record calls f(event).
func (f RecorderFunc) Record(event Event) {
	f(event)
}
