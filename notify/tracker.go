// Package notify tracks which posts have public comments the local user
// has not seen yet. The state is per-client: a map of post id to the
// last time this client checked that post's comments, persisted to a
// local store, plus an in-memory set of posts currently flagged unseen.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"blog/models"
)

// CommentSource fetches a post's comments; client.Client satisfies it.
type CommentSource interface {
	CommentsForPost(ctx context.Context, postID string) ([]models.Comment, error)
}

// StateStore persists the last-checked map between runs.
type StateStore interface {
	Load() (map[string]int64, error)
	Save(map[string]int64) error
}

// Tracker is the unseen-comment state machine. Each Tracker is an
// explicit instance; tests and independent views construct their own.
type Tracker struct {
	mu          sync.Mutex
	store       StateStore
	lastChecked map[string]int64 // post id -> unix millis
	flagged     map[string]struct{}
	now         func() time.Time
}

func NewTracker(store StateStore) (*Tracker, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = make(map[string]int64)
	}
	return &Tracker{
		store:       store,
		lastChecked: state,
		flagged:     make(map[string]struct{}),
		now:         time.Now,
	}, nil
}

// Poll checks every post for public comments newer than its last-checked
// time and flags those that have any. Flagging is monotonic: polling
// never unflags a post, only Acknowledge does. Returns true only when at
// least one post became newly flagged, which is the caller's cue to
// re-render; reconfirming already-flagged posts is not.
//
// A failed fetch for one post is logged and the remaining posts are
// still checked.
func (t *Tracker) Poll(ctx context.Context, source CommentSource, postIDs []string) bool {
	changed := false
	for _, postID := range postIDs {
		comments, err := source.CommentsForPost(ctx, postID)
		if err != nil {
			log.Printf("notify: fetching comments for post %s: %v", postID, err)
			continue
		}

		// Re-read state under the lock: an Acknowledge may have landed
		// while the fetch was in flight.
		t.mu.Lock()
		last := t.lastChecked[postID]
		for _, c := range comments {
			if c.Origin() != models.OriginPublic {
				continue
			}
			if c.CreatedAt.UnixMilli() > last {
				if _, already := t.flagged[postID]; !already {
					t.flagged[postID] = struct{}{}
					changed = true
				}
				break
			}
		}
		t.mu.Unlock()
	}
	return changed
}

// Acknowledge marks a post's comments as seen: it returns the previous
// last-checked time (callers highlight comments newer than it) and
// whether the post had been flagged, then advances last-checked to now
// and persists. Acknowledging an already-seen post is a no-op beyond the
// timestamp update.
func (t *Tracker) Acknowledge(postID string) (time.Time, bool, error) {
	t.mu.Lock()
	prev := t.lastChecked[postID]
	_, hadUnseen := t.flagged[postID]
	t.lastChecked[postID] = t.now().UnixMilli()
	delete(t.flagged, postID)
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	return time.UnixMilli(prev), hadUnseen, t.store.Save(snapshot)
}

// NoteOwnComment advances a post's last-checked time after the local
// user comments on it, so their own reply does not flag the post as
// unseen on the next poll.
func (t *Tracker) NoteOwnComment(postID string) error {
	t.mu.Lock()
	t.lastChecked[postID] = t.now().UnixMilli()
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	return t.store.Save(snapshot)
}

func (t *Tracker) HasUnseen(postID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.flagged[postID]
	return ok
}

func (t *Tracker) UnseenCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.flagged)
}

// Unseen returns the posts currently flagged, in no particular order.
func (t *Tracker) Unseen() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.flagged))
	for id := range t.flagged {
		ids = append(ids, id)
	}
	return ids
}

func (t *Tracker) snapshotLocked() map[string]int64 {
	snapshot := make(map[string]int64, len(t.lastChecked))
	for k, v := range t.lastChecked {
		snapshot[k] = v
	}
	return snapshot
}
