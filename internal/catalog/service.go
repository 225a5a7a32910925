package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"babilonia.local/internal/catalog/audit"
	"babilonia.local/internal/catalog/gateway"
	"babilonia.local/internal/platform/auth"
)

// ErrNotFound covers both "the directory has no such identifier" and
// "the identifier exists but is not a product".
var ErrNotFound = errors.New("product not found")

// ErrInvalidCategory rejects category filters outside the closed set.
var ErrInvalidCategory = errors.New("unknown category")

// ListingStore caches whole decoded listings by category key ("" is the
// unfiltered listing). Best-effort: implementations report failures as
// misses and never return errors.
type ListingStore interface {
	Get(ctx context.Context, key string) ([]Product, bool)
	Put(ctx context.Context, key string, products []Product)
	Invalidate(ctx context.Context)
}

// PointCache caches single products by identifier, including negative
// entries for identifiers confirmed missing.
type PointCache interface {
	Get(id string) (p Product, found bool, negative bool)
	Set(p Product)
	SetNotFound(id string)
	Del(id string)
	Clear()
}

// Service orchestrates gateway, codec and caches. store, points and
// collector may each be nil; the service then simply skips that concern.
type Service struct {
	dir        gateway.Directory
	store      ListingStore
	points     PointCache
	collector  audit.Collector
	maxResults int
}

func NewService(dir gateway.Directory, store ListingStore, points PointCache, collector audit.Collector, maxResults int) *Service {
	return &Service{
		dir:        dir,
		store:      store,
		points:     points,
		collector:  collector,
		maxResults: maxResults,
	}
}

// List returns the decoded catalog, optionally filtered to one category
// short name. cached reports whether the result came from the listing
// store.
func (s *Service) List(ctx context.Context, category string) (products []Product, cached bool, err error) {
	if category != "" && !ValidCategory(category) {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	if s.store != nil {
		if list, ok := s.store.Get(ctx, category); ok {
			return list, true, nil
		}
	}

	prefix := RootFolder + "/"
	if category != "" {
		folder, _ := CategoryFolder(category)
		prefix = folder + "/"
	}

	resources, err := s.dir.ListByPrefix(ctx, prefix, s.maxResults)
	if err != nil {
		return nil, false, fmt.Errorf("list media directory: %w", err)
	}

	products = make([]Product, 0, len(resources))
	for _, res := range resources {
		// an unfiltered listing may see assets sitting directly under the
		// root folder; a product identifier has root/category/slug depth
		if category == "" && strings.Count(res.PublicID, "/") < 2 {
			continue
		}
		dec, ok := Decode(res.PublicID)
		if !ok {
			continue // not a product, e.g. a banner image
		}
		// prefix matching alone is not category equality
		if category != "" && dec.Category != category {
			continue
		}
		products = append(products, newProduct(res, dec))
	}

	if s.store != nil {
		s.store.Put(ctx, category, products)
	}
	return products, false, nil
}

// Get fetches one product by its full identifier.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if s.points != nil {
		if p, found, negative := s.points.Get(id); found {
			if negative {
				return Product{}, ErrNotFound
			}
			return p, nil
		}
	}

	res, err := s.dir.GetByID(ctx, id)
	if errors.Is(err, gateway.ErrNotFound) {
		if s.points != nil {
			s.points.SetNotFound(id)
		}
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get media resource: %w", err)
	}

	dec, ok := Decode(id)
	if !ok {
		// the asset exists but carries no product encoding
		return Product{}, ErrNotFound
	}

	p := newProduct(res, dec)
	if s.points != nil {
		s.points.Set(p)
	}
	return p, nil
}

// Delete removes the asset and invalidates every local projection.
// Reads that captured a cached listing before this call may serve the
// deleted product once; the next listing is fresh.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.dir.DeleteByID(ctx, id)
	if errors.Is(err, gateway.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete media resource: %w", err)
	}

	if s.store != nil {
		s.store.Invalidate(ctx)
	}
	if s.points != nil {
		s.points.Del(id)
	}
	s.auditEvent(ctx, "delete", id)
	return nil
}

type UploadInput struct {
	Title    string
	Price    float64
	Category string
	Image    io.Reader
}

// Upload stores a new product image under the encoded identifier and
// returns the freshly decoded record.
func (s *Service) Upload(ctx context.Context, in UploadInput) (Product, error) {
	id := PublicID(in.Category, in.Title, in.Price)

	res, err := s.dir.Upload(ctx, gateway.UploadRequest{PublicID: id, Body: in.Image})
	if err != nil {
		return Product{}, fmt.Errorf("upload media resource: %w", err)
	}

	// the directory may normalize the identifier; trust its answer
	dec, ok := Decode(res.PublicID)
	if !ok {
		dec, _ = Decode(id)
	}
	p := newProduct(res, dec)

	if s.store != nil {
		s.store.Invalidate(ctx)
	}
	if s.points != nil {
		s.points.Set(p)
	}
	s.auditEvent(ctx, "upload", p.ID)
	return p, nil
}

// InvalidateCache drops every local projection unconditionally.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.store != nil {
		s.store.Invalidate(ctx)
	}
	if s.points != nil {
		s.points.Clear()
	}
}

func (s *Service) auditEvent(ctx context.Context, action, id string) {
	if s.collector == nil {
		return
	}
	actor := ""
	if identity, ok := auth.GetIdentity(ctx); ok {
		actor = identity.UserID
	}
	s.collector.Collect(audit.Event{
		Action:   action,
		PublicID: id,
		Actor:    actor,
		At:       time.Now(),
	})
}

func newProduct(res gateway.Resource, dec Decoded) Product {
	return Product{
		ID:          res.PublicID,
		Title:       dec.Title,
		Description: dec.Title + " - Producto de calidad",
		Price:       dec.Price,
		Image:       res.PublicID,
		Category:    dec.Category,
		CreatedAt:   res.CreatedAt,
		URL:         res.URL,
		Width:       res.Width,
		Height:      res.Height,
		Format:      res.Format,
	}
}
