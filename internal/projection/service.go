package projection

import (
	"context"
	"log/slog"
	"time"

	v1 "github.com/blitzfilter/item-read/internal/api/v1"
	"github.com/blitzfilter/item-read/internal/core/storage"
	"github.com/blitzfilter/item-read/internal/hashindex"
	"github.com/blitzfilter/item-read/internal/materialize"
)

// EventReader is the slice of the query service the projection layer reads through.
type EventReader interface {
	QueryEventsByItem(ctx context.Context, itemID string, dir storage.Direction) ([]v1.ItemEvent, error)
	QueryLatestEventHashesBySource(ctx context.Context, sourceID string) ([]v1.ItemEventHash, error)
	QueryAllEventHashesBySource(ctx context.Context, sourceID string) ([]v1.ItemEventHash, error)
}

// Service implements the read API on top of the event query service.
// It holds no state between calls; every request re-reads the event store.
type Service struct {
	events EventReader

	// queryTimeout bounds each HTTP request's reads. Zero leaves it to the client.
	queryTimeout time.Duration
}

// NewService creates a new projection service.
func NewService(events EventReader, queryTimeout time.Duration) *Service {
	return &Service{
		events:       events,
		queryTimeout: queryTimeout,
	}
}

// GetMaterializedItem folds the item's events, oldest first, into its current state.
// It returns nil, nil when the item has no events.
func (s *Service) GetMaterializedItem(ctx context.Context, itemID string) (*v1.MaterializedItem, error) {
	events, err := s.events.QueryEventsByItem(ctx, itemID, storage.OldestFirst)
	if err != nil {
		return nil, err
	}

	item := materialize.Materialize(itemID, events)
	if item == nil {
		slog.Debug("[Projection] Item has no events", "item_id", itemID)
	}
	return item, nil
}

// GetItemEvents returns the raw event series of an item.
func (s *Service) GetItemEvents(ctx context.Context, itemID string, dir storage.Direction) ([]v1.ItemEvent, error) {
	return s.events.QueryEventsByItem(ctx, itemID, dir)
}

// GetLatestHashMap maps every item of the source to the hash of its most recent event.
func (s *Service) GetLatestHashMap(ctx context.Context, sourceID string) (map[string]string, error) {
	hashes, err := s.events.QueryLatestEventHashesBySource(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	return hashindex.BuildLatestHashMap(hashes), nil
}

// GetFullHashMap maps every item of the source to all of its hashes, latest first.
func (s *Service) GetFullHashMap(ctx context.Context, sourceID string) (map[string][]string, error) {
	hashes, err := s.events.QueryLatestEventHashesBySource(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	return hashindex.BuildFullHashMap(hashes), nil
}

// GetAllEventHashes returns every hash record of the source in index order.
func (s *Service) GetAllEventHashes(ctx context.Context, sourceID string) ([]v1.ItemEventHash, error) {
	return s.events.QueryAllEventHashesBySource(ctx, sourceID)
}
