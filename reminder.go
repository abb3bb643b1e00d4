package strata

import (
	"time"

	"github.com/google/uuid"
)

// reminder is a scheduled self-message. It lives in the owning state's list
// until it fires or the owner exits, whichever comes first.
type reminder struct {
	id      string
	timeout time.Duration
	elapsed time.Duration
	payload Message
}

// RemindIn schedules msg for delivery once the state has stayed active for
// d. The reminder advances with every tick while this state is on the
// active path and is discarded, without firing, when the state exits.
// Several reminders may be pending at once, including for the same message
// type.
func (b *Base) RemindIn(d time.Duration, msg Message) {
	b.reminders = append(b.reminders, &reminder{
		id:      uuid.New().String(),
		timeout: d,
		payload: msg,
	})
}

// ClearAllReminders drops every pending reminder on this state. The machine
// calls this implicitly when the state exits.
func (b *Base) ClearAllReminders() {
	for i := range b.reminders {
		b.reminders[i] = nil
	}
	b.reminders = b.reminders[:0]
}

// ClearRemindersOfType drops pending reminders whose payload has the given
// message type.
func (b *Base) ClearRemindersOfType(key Key) {
	kept := b.reminders[:0]
	for _, r := range b.reminders {
		if KeyOf(r.payload) == key {
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(b.reminders); i++ {
		b.reminders[i] = nil
	}
	b.reminders = kept
}

// advanceReminders moves every pending reminder forward by delta and fires
// the ones whose elapsed time reached their timeout. Fired reminders are
// removed in place; fire receives each one in scheduling order.
func (b *Base) advanceReminders(delta time.Duration, fire func(*reminder)) {
	if len(b.reminders) == 0 {
		return
	}
	kept := b.reminders[:0]
	for _, r := range b.reminders {
		r.elapsed += delta
		if r.elapsed >= r.timeout {
			fire(r)
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(b.reminders); i++ {
		b.reminders[i] = nil
	}
	b.reminders = kept
}
