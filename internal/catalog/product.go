package catalog

import "time"

// Product is the decoded, user-facing record. It is synthesized fresh on
// every decode and never mutated; the media directory remains the sole
// source of truth.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"` // same identifier, consumed by the image-serving layer
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	URL         string    `json:"url"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Format      string    `json:"format"`
}
