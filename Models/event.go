package Models

// Event types recognized by the schedule extraction prompt.
const (
	EventTypeOfficial = "official"
	EventTypeTrip     = "trip"
	EventTypePersonal = "personal"
)

// EventTimeAllDay is the sentinel for events without a specific time.
const EventTimeAllDay = "All Day"

// Event is one calendar entry extracted from an uploaded schedule
// spreadsheet. The ID equals the Firestore document ID (or a generated uuid
// in demo mode) so DELETE /schedule/:event_id resolves either way.
type Event struct {
	ID           string `json:"id" firestore:"id"`
	Title        string `json:"title" firestore:"title"`
	Date         string `json:"date" firestore:"date"`
	Time         string `json:"time" firestore:"time"`
	Location     string `json:"location" firestore:"location"`
	Participants string `json:"participants" firestore:"participants"`
	Manager      string `json:"manager" firestore:"manager"`
	Type         string `json:"type" firestore:"type"`
	Note         string `json:"note" firestore:"note"`
}
