package metrics

// EventType defines the type of event being broadcast.
type EventType string

const (
	EventPricesUpdated EventType = "prices_updated"
	EventUsersUpdated  EventType = "users_updated"
	EventSupplyUpdated EventType = "supply_updated"
	EventLoaded        EventType = "loaded"
	EventRefreshFailed EventType = "refresh_failed"
)

// Event represents a metrics change. Data holds a models.Snapshot for every
// type except EventRefreshFailed, which carries a []string of failed fields.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// Subscriber is a channel that receives events.
type Subscriber chan Event
