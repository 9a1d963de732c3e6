package admin

import (
	"context"
	"log"
	"time"
)

// Poller refetches the order view on a fixed interval. There is no
// backoff and no dedup of overlapping requests; out-of-order responses
// are handled by the view's sequence guard.
type Poller struct {
	view  *OrderView
	every time.Duration
	stop  chan struct{}
}

func NewPoller(view *OrderView, every time.Duration) *Poller {
	if every <= 0 {
		every = 3 * time.Second
	}
	return &Poller{view: view, every: every, stop: make(chan struct{})}
}

// Run blocks until Stop is called or ctx ends.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.view.Refresh(ctx); err != nil {
				log.Println("order poll error:", err)
			}
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) Stop() {
	close(p.stop)
}
