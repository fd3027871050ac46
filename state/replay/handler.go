package replay

import (
	"fmt"

	"github.com/nbd-wtf/go-nostr"
)

// Seen reports whether the event has already been handled.
func (t *Tracker) Seen(event nostr.Event) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	_, exists := t.data[event.ID]
	return exists
}

// Mark records the event as handled. It fails if it was handled before.
func (t *Tracker) Mark(event nostr.Event) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if _, exists := t.data[event.ID]; exists {
		return fmt.Errorf("event %s has already been handled", event.ID)
	}
	t.data[event.ID] = event.PubKey
	return nil
}

// Forget drops the event from the handled set so that it can be evaluated
// again.
func (t *Tracker) Forget(event nostr.Event) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	delete(t.data, event.ID)
}
