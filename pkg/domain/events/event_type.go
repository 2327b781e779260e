package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// Account events
	EventTypeAccountCreated EventType = "Account.Created"
	EventTypeAccountUpdated EventType = "Account.Updated"
	EventTypeAccountDeleted EventType = "Account.Deleted"

	// Transaction events
	EventTypeTransactionCreated EventType = "Transaction.Created"
	EventTypeTransactionUpdated EventType = "Transaction.Updated"
	EventTypeTransactionDeleted EventType = "Transaction.Deleted"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
