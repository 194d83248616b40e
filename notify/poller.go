package notify

import (
	"context"
	"log"
	"time"
)

// DefaultInterval is how often the poller re-checks for new comments.
const DefaultInterval = 120 * time.Second

// PostSource lists the posts to watch; client.Client satisfies it.
type PostSource interface {
	PostIDs(ctx context.Context) ([]string, error)
}

// Poller drives a Tracker: one check immediately, then one per interval
// until the context is cancelled. OnChange fires only when a check flags
// a post that was not flagged before.
type Poller struct {
	Tracker  *Tracker
	Comments CommentSource
	Posts    PostSource
	Interval time.Duration
	OnChange func()
}

func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	p.check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.check(ctx)
		}
	}
}

func (p *Poller) check(ctx context.Context) {
	postIDs, err := p.Posts.PostIDs(ctx)
	if err != nil {
		log.Printf("notify: listing posts: %v", err)
		return
	}
	if p.Tracker.Poll(ctx, p.Comments, postIDs) && p.OnChange != nil {
		p.OnChange()
	}
}
