package audit

import "time"

// Event records one catalog mutation (delete or upload).
type Event struct {
	Action   string    `json:"action"`
	PublicID string    `json:"public_id"`
	Actor    string    `json:"actor"`
	At       time.Time `json:"at"`
}

// Collector receives events off the request path. Implementations must
// never block the caller.
type Collector interface {
	Collect(event Event)
	Close()
}

// ChannelCollector buffers events on a channel.
type ChannelCollector struct {
	ch     chan Event
	closed bool
}

func NewChannelCollector(bufferSize int) *ChannelCollector {
	return &ChannelCollector{
		ch:     make(chan Event, bufferSize),
		closed: false,
	}
}

func (c *ChannelCollector) Collect(event Event) {
	if c.closed {
		return
	}
	select {
	case c.ch <- event:
	default:
		// buffer full, drop rather than stall a delete
	}
}

func (c *ChannelCollector) Events() <-chan Event {
	return c.ch
}

func (c *ChannelCollector) Close() {
	c.closed = true
	close(c.ch)
}
