package notes

import (
	"sync"
	"time"
)

// EventType labels a change emitted by the store.
type EventType string

const (
	EventNotesLoaded      EventType = "notes_loaded"
	EventCategoriesLoaded EventType = "categories_loaded"
	EventNoteCreated      EventType = "note_created"
	EventNoteUpdated      EventType = "note_updated"
	EventNoteDeleted      EventType = "note_deleted"
	EventNoteRestored     EventType = "note_restored"
	EventCategoryCreated  EventType = "category_created"
	EventCategoryUpdated  EventType = "category_updated"
	EventCategoryDeleted  EventType = "category_deleted"
	EventSyncFailed       EventType = "sync_failed"
)

// Event describes a single store change.
type Event struct {
	Type      EventType
	ID        string
	Timestamp time.Time
}

// eventBus fans events out to subscribers. Emission never blocks: a
// subscriber with a full buffer misses the event.
type eventBus struct {
	mu     sync.Mutex
	subs   []chan Event
	closed bool
}

const eventBuffer = 16

func (b *eventBus) subscribe() <-chan Event {
	ch := make(chan Event, eventBuffer)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

func (b *eventBus) emit(typ EventType, id string) {
	ev := Event{Type: typ, ID: id, Timestamp: time.Now()}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *eventBus) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
