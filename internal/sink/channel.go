package sink

import (
	"context"

	"github.com/grovetools/niribar/internal/projection"
)

// Channel hands trees to an in-process consumer such as the monitor view.
// Emit blocks until the consumer receives the tree or ctx is done.
type Channel struct {
	ctx context.Context
	ch  chan *projection.Tree
}

// NewChannel creates a channel sink with the given buffer size.
func NewChannel(ctx context.Context, buffer int) *Channel {
	return &Channel{ctx: ctx, ch: make(chan *projection.Tree, buffer)}
}

// C returns the receive side.
func (c *Channel) C() <-chan *projection.Tree {
	return c.ch
}

// Emit forwards tree. Each tree is freshly projected, so the receiver owns it.
func (c *Channel) Emit(tree *projection.Tree) error {
	select {
	case <-c.ctx.Done():
		return c.ctx.Err()
	case c.ch <- tree:
		return nil
	}
}

// Close closes the receive side. Emit must not be called afterwards.
func (c *Channel) Close() {
	close(c.ch)
}
