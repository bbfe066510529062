package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	v1 "github.com/blitzfilter/item-read/internal/api/v1"
	"github.com/blitzfilter/item-read/internal/core/storage"
	"github.com/blitzfilter/item-read/internal/metrics"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

var (
	// ErrQueryFailed wraps every failure of the event store. The store's own
	// error stays reachable through errors.Is / errors.As.
	ErrQueryFailed = errors.New("event store query failed")

	// ErrInvalidDirection is returned when a version-ordered query is asked for
	// anything but OldestFirst or LatestFirst.
	ErrInvalidDirection = errors.New("invalid query direction")

	// ErrMissingID is returned for an empty item or source identifier.
	ErrMissingID = errors.New("identifier is required")

	// ErrPageLimitExceeded is wrapped into ErrQueryFailed when MaxPages is hit.
	ErrPageLimitExceeded = errors.New("page limit exceeded")
)

// Options controls how partitions are paged.
type Options struct {
	// PageSize is the number of records requested per page.
	PageSize int

	// MaxPages aborts a drain after this many pages. Zero drains without limit.
	MaxPages int
}

func (o Options) normalized() Options {
	n := o
	if n.PageSize <= 0 {
		n.PageSize = DefaultPageSize
	}
	if n.PageSize > MaxPageSize {
		n.PageSize = MaxPageSize
	}
	if n.MaxPages < 0 {
		n.MaxPages = 0
	}
	return n
}

// Service reads event series and hash projections out of the event store.
//
// Every call drains the whole partition before returning. Records that cannot
// be decoded are dropped and logged with the call's query_id; only store
// failures surface as errors.
type Service struct {
	store      storage.EventStore
	opts       Options
	newQueryID func() string
}

// NewService creates a query service over the given store.
func NewService(store storage.EventStore, opts Options) *Service {
	if store == nil {
		panic("query: store must not be nil")
	}
	return &Service{
		store: store,
		opts:  opts.normalized(),
		newQueryID: func() string {
			return uuid.NewString()
		},
	}
}

// QueryEventsByItem returns every event of one item in the requested version order.
func (s *Service) QueryEventsByItem(ctx context.Context, itemID string, dir storage.Direction) ([]v1.ItemEvent, error) {
	if err := requireID(itemID); err != nil {
		return nil, err
	}
	if err := requireExplicit(dir); err != nil {
		return nil, err
	}
	q := storage.Query{
		PartitionKey:  storage.ItemPartitionKey(itemID),
		SortKeyPrefix: storage.EventSortKeyPrefix,
		Direction:     dir,
	}
	return drain(ctx, s, q, metrics.KindItemEvent, decodeItemEvent)
}

// QueryEventHashesBySource returns the hash projection of every event of one
// source in the requested version order.
func (s *Service) QueryEventHashesBySource(ctx context.Context, sourceID string, dir storage.Direction) ([]v1.ItemEventHash, error) {
	if err := requireID(sourceID); err != nil {
		return nil, err
	}
	if err := requireExplicit(dir); err != nil {
		return nil, err
	}
	q := storage.Query{
		Index:         storage.HashIndexName,
		PartitionKey:  storage.SourcePartitionKey(sourceID),
		SortKeyPrefix: storage.EventSortKeyPrefix,
		Direction:     dir,
	}
	return drain(ctx, s, q, metrics.KindItemEventHash, decodeItemEventHash)
}

// QueryLatestEventHashesBySource is QueryEventHashesBySource with LatestFirst,
// so the first record seen per item is that item's most recent one.
func (s *Service) QueryLatestEventHashesBySource(ctx context.Context, sourceID string) ([]v1.ItemEventHash, error) {
	return s.QueryEventHashesBySource(ctx, sourceID, storage.LatestFirst)
}

// QueryAllEventHashesBySource scans the whole source partition of the hash
// index without a sort-key filter, in whatever order the index yields.
// Intended for bulk and audit reads.
func (s *Service) QueryAllEventHashesBySource(ctx context.Context, sourceID string) ([]v1.ItemEventHash, error) {
	if err := requireID(sourceID); err != nil {
		return nil, err
	}
	q := storage.Query{
		Index:        storage.HashIndexName,
		PartitionKey: storage.SourcePartitionKey(sourceID),
		Direction:    storage.IndexOrder,
	}
	return drain(ctx, s, q, metrics.KindItemEventHash, decodeItemEventHash)
}

// QueryAllEventHashesBySourceSorted is QueryAllEventHashesBySource with an
// explicit version order.
func (s *Service) QueryAllEventHashesBySourceSorted(ctx context.Context, sourceID string, dir storage.Direction) ([]v1.ItemEventHash, error) {
	if err := requireID(sourceID); err != nil {
		return nil, err
	}
	if err := requireExplicit(dir); err != nil {
		return nil, err
	}
	q := storage.Query{
		Index:        storage.HashIndexName,
		PartitionKey: storage.SourcePartitionKey(sourceID),
		Direction:    dir,
	}
	return drain(ctx, s, q, metrics.KindItemEventHash, decodeItemEventHash)
}

// drain pages through q until the store reports no further cursor.
// Cancellation is checked before every page request.
func drain[T any](
	ctx context.Context,
	s *Service,
	q storage.Query,
	kind string,
	decode func(map[string]any) (T, error),
) ([]T, error) {
	queryID := s.newQueryID()
	q.Limit = s.opts.PageSize

	results := make([]T, 0)
	pages := 0
	dropped := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, queryFailed(q, err)
		}
		if s.opts.MaxPages > 0 && pages >= s.opts.MaxPages {
			slog.Warn("[Query] Partition exceeds page limit",
				"query_id", queryID,
				"partition_key", q.PartitionKey,
				"pages", pages,
				"max_pages", s.opts.MaxPages,
			)
			return nil, queryFailed(q, fmt.Errorf("%w after %d pages", ErrPageLimitExceeded, pages))
		}

		page, err := s.store.Query(ctx, q)
		if err != nil {
			return nil, queryFailed(q, err)
		}
		pages++

		for _, rec := range page.Records {
			decodeErr := rec.DecodeErr
			var value T
			if decodeErr == nil {
				value, decodeErr = decode(rec.Attributes)
			}
			if decodeErr != nil {
				dropped++
				metrics.RecordsDropped.WithLabelValues(kind).Inc()
				slog.Warn("[Query] Dropping undecodable record",
					"query_id", queryID,
					"kind", kind,
					"partition_key", rec.PartitionKey,
					"sort_key", rec.SortKey,
					"error", decodeErr,
				)
				continue
			}
			results = append(results, value)
		}

		if page.LastEvaluated == nil {
			break
		}
		if q.StartAfter != nil && *page.LastEvaluated == *q.StartAfter {
			return nil, queryFailed(q, fmt.Errorf("store returned a non-advancing cursor at %q", page.LastEvaluated.SortKey))
		}
		q.StartAfter = page.LastEvaluated
	}

	metrics.RecordsDecoded.WithLabelValues(kind).Add(float64(len(results)))

	slog.Debug("[Query] Partition drained",
		"query_id", queryID,
		"index", metrics.IndexLabel(q.Index),
		"partition_key", q.PartitionKey,
		"direction", q.Direction.String(),
		"pages", pages,
		"records", len(results),
		"dropped", dropped,
	)

	return results, nil
}

func queryFailed(q storage.Query, cause error) error {
	return fmt.Errorf("%w: %s partition %q: %w", ErrQueryFailed, metrics.IndexLabel(q.Index), q.PartitionKey, cause)
}

func requireExplicit(dir storage.Direction) error {
	if dir != storage.OldestFirst && dir != storage.LatestFirst {
		return fmt.Errorf("%w: %s", ErrInvalidDirection, dir)
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	return nil
}
