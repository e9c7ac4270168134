package updates

import (
	"time"

	"github.com/rs/zerolog"
)

// Feed is the in-memory notification list plus its unread counter. Mutations
// here are applied only after the corresponding remote call succeeded; there
// is no rollback path because there is nothing speculative to roll back.
type Feed struct {
	Items  []Update
	Unread int

	log zerolog.Logger
}

// NewFeed returns an empty feed logging contract violations to log.
func NewFeed(log zerolog.Logger) *Feed {
	return &Feed{log: log}
}

// Replace swaps in a fresh fetch result wholesale.
func (f *Feed) Replace(items []Update, unread int) {
	f.Items = items
	f.Unread = unread
}

// item resolves a render key to an index, rejecting fallback keys: those are
// render-only and a mutation addressed by one is a programming error.
func (f *Feed) item(key string) int {
	for i := range f.Items {
		if f.Items[i].Key() != key {
			continue
		}
		if f.Items[i].UpdateID == nil {
			f.log.Warn().Str("key", key).Msg("mutation targeted a fallback render key; ignoring")
			return -1
		}
		return i
	}
	return -1
}

// MarkRead flips one item to read and stamps ReadAt once. Idempotent: a
// second call on the same key changes nothing, and the unread counter never
// goes below zero.
func (f *Feed) MarkRead(key string, now time.Time) {
	i := f.item(key)
	if i < 0 || f.Items[i].IsRead {
		return
	}
	f.Items[i].IsRead = true
	t := now
	f.Items[i].ReadAt = &t
	if f.Unread > 0 {
		f.Unread--
	}
}

// MarkAllRead marks every item read and zeroes the counter.
func (f *Feed) MarkAllRead(now time.Time) {
	for i := range f.Items {
		if f.Items[i].IsRead {
			continue
		}
		f.Items[i].IsRead = true
		t := now
		f.Items[i].ReadAt = &t
	}
	f.Unread = 0
}

// Delete removes exactly the item with the given key. The unread counter is
// deliberately left alone even when the removed item was unread; see the
// design notes before "fixing" this.
func (f *Feed) Delete(key string) {
	i := f.item(key)
	if i < 0 {
		return
	}
	f.Items = append(f.Items[:i], f.Items[i+1:]...)
}
