package audit

import (
	"context"
	"log/slog"
	"time"
)

// Consumer drains a ChannelCollector and writes the audit trail to the
// structured log. There is no database in this system; the log stream is
// the durable record of who deleted or uploaded what.
type Consumer struct {
	collector *ChannelCollector
	batchSize int
	interval  time.Duration
}

func NewConsumer(collector *ChannelCollector) *Consumer {
	return &Consumer{
		collector: collector,
		batchSize: 100,
		interval:  time.Second,
	}
}

// Run blocks until ctx is done or the collector is closed.
func (c *Consumer) Run(ctx context.Context) {
	batch := make([]Event, 0, c.batchSize)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.flush(batch)
			return
		case event, ok := <-c.collector.Events():
			if !ok {
				c.flush(batch)
				return
			}
			batch = append(batch, event)
			if len(batch) >= c.batchSize {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				c.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (c *Consumer) flush(batch []Event) {
	for _, e := range batch {
		slog.Info("audit",
			"action", e.Action,
			"public_id", e.PublicID,
			"actor", e.Actor,
			"at", e.At.UTC().Format(time.RFC3339),
		)
	}
}
