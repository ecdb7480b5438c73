package notify

import (
	"context"
	"log"
	"sync"
)

// Permission is the tri-state platform notification permission.
type Permission int

const (
	NotRequested Permission = iota
	Granted
	Denied
)

func (p Permission) String() string {
	switch p {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "not-requested"
	}
}

// Gate owns the process-wide permission state for one platform. Permission is
// requested lazily and at most once.
type Gate struct {
	mu         sync.Mutex
	platform   Platform
	state      Permission
	requesting bool
}

// NewGate creates a gate for the given platform. A nil platform behaves like None.
func NewGate(p Platform) *Gate {
	if p == nil {
		p = None{}
	}
	return &Gate{platform: p}
}

// State returns the current permission.
func (g *Gate) State() Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Platform returns the platform the gate dispatches to.
func (g *Gate) Platform() Platform {
	return g.platform
}

// Ensure requests permission if it has not been requested yet. Platforms
// without notification support are never asked.
func (g *Gate) Ensure(ctx context.Context) Permission {
	g.mu.Lock()
	if g.state != NotRequested || g.requesting || !g.platform.Supported() {
		state := g.state
		g.mu.Unlock()
		return state
	}
	g.requesting = true
	g.mu.Unlock()

	// The request may block on the user; dispatch keeps working meanwhile.
	perm, err := g.platform.RequestPermission(ctx)
	if err != nil {
		log.Printf("[notify] Permission request on %s failed: %v", g.platform.Name(), err)
		perm = Denied
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.requesting = false
	if perm == NotRequested {
		// Dismissed without an answer, ask again next time.
		return perm
	}

	g.state = perm
	log.Printf("[notify] Permission for %s notifications: %s", g.platform.Name(), perm)
	return perm
}

// Dispatch sends n when permission was granted. Denial, missing support and
// send failures all degrade to doing nothing.
func (g *Gate) Dispatch(ctx context.Context, n Notification) bool {
	if g.State() != Granted || !g.platform.Supported() {
		return false
	}

	if err := g.platform.Send(ctx, n); err != nil {
		log.Printf("[notify] Error: %s notification failed: %v", g.platform.Name(), err)
		return false
	}
	return true
}
