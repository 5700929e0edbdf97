package resource

// Handle is an opaque key for a value held in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a handle lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event represents a handle lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Backend provides the underlying storage for handles.
type Backend interface {
	// Create stores a strong reference to value and returns its handle.
	Create(value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Release drops the reference held by handle and returns the value.
	// Returns (nil, false) if the handle is not live.
	Release(handle Handle) (any, bool)

	// Len returns the number of live handles.
	Len() int

	// Close releases every handle.
	Close() error
}

// Table maps handles to values and notifies observers about their lifecycle.
type Table interface {
	// Insert adds a value and returns its handle.
	Insert(value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Remove releases a handle and returns (value, true) if it was live.
	Remove(handle Handle) (any, bool)

	// Subscribe adds an observer for lifecycle events.
	Subscribe(Observer)

	// Unsubscribe removes an observer.
	Unsubscribe(Observer)

	// Len returns the number of live handles.
	Len() int

	// Close releases every handle and stops accepting inserts.
	Close() error
}
