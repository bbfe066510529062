package projection

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	httperr "github.com/blitzfilter/item-read/internal/core/errors"
	"github.com/blitzfilter/item-read/internal/core/storage"
	storagemocks "github.com/blitzfilter/item-read/internal/mocks/storage"
	"github.com/blitzfilter/item-read/internal/query"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func doGet(r http.Handler, path string, params url.Values) *httptest.ResponseRecorder {
	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) httperr.ErrorResponse {
	t.Helper()
	var body httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestService_HandleGetItem_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		params         url.Values
		configure      func(store *storagemocks.EventStore)
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "missing item_id returns 400",
			params:         url.Values{},
			configure:      func(_ *storagemocks.EventStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidRequestError,
		},
		{
			name:           "blank item_id returns 400",
			params:         url.Values{"item_id": {"   "}},
			configure:      func(_ *storagemocks.EventStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidRequestError,
		},
		{
			name:   "item without events returns 404",
			params: url.Values{"item_id": {"Y"}},
			configure: func(store *storagemocks.EventStore) {
				store.EXPECT().
					Query(mock.Anything, itemQuery("Y", storage.OldestFirst)).
					Return(&storage.Page{}, nil).
					Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedType:   httperr.HttpItemNotFoundError,
		},
		{
			name:   "store failure returns 502",
			params: url.Values{"item_id": {testItemID}},
			configure: func(store *storagemocks.EventStore) {
				store.EXPECT().
					Query(mock.Anything, itemQuery(testItemID, storage.OldestFirst)).
					Return(nil, errors.New("throttled")).
					Once()
			},
			expectedStatus: http.StatusBadGateway,
			expectedType:   httperr.HttpQueryFailedError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestService(t)
			tc.configure(store)

			w := doGet(newTestRouter(svc), "/v1/items", tc.params)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedType, decodeErrorBody(t, w).ErrorType)
		})
	}
}

func TestService_HandleGetItem_ReturnsMaterializedItem(t *testing.T) {
	svc, store := newTestService(t)

	store.EXPECT().
		Query(mock.Anything, itemQuery(testItemID, storage.OldestFirst)).
		Return(&storage.Page{Records: []storage.Record{
			eventRecord(testItemID, "t1", map[string]any{"price": json.Number("160"), "hash": "h1"}),
			eventRecord(testItemID, "t2", map[string]any{"price": json.Number("37"), "name_en": "A"}),
		}}, nil).
		Once()

	w := doGet(newTestRouter(svc), "/v1/items", url.Values{"item_id": {testItemID}})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, testItemID, body["item_id"])
	require.Equal(t, "160", body["price"])
	require.Equal(t, "A", body["name_en"])
	require.Equal(t, "t1", body["created"])
	require.NotContains(t, body, "hash")
	require.NotContains(t, body, "event_id")
}

func TestService_HandleGetItemEvents(t *testing.T) {
	t.Run("latest first", func(t *testing.T) {
		svc, store := newTestService(t)
		store.EXPECT().
			Query(mock.Anything, itemQuery(testItemID, storage.LatestFirst)).
			Return(&storage.Page{Records: []storage.Record{
				eventRecord(testItemID, "t2", nil),
				eventRecord(testItemID, "t1", nil),
			}}, nil).
			Once()

		w := doGet(newTestRouter(svc), "/v1/items/events", url.Values{
			"item_id":   {testItemID},
			"direction": {"latest_first"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var body ItemEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "latest_first", body.Direction)
		require.Len(t, body.Events, 2)
		require.Equal(t, "t2", *body.Events[0].Created)
	})

	t.Run("unknown direction returns 400", func(t *testing.T) {
		svc, _ := newTestService(t)
		w := doGet(newTestRouter(svc), "/v1/items/events", url.Values{
			"item_id":   {testItemID},
			"direction": {"index_order"},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, httperr.HttpInvalidRequestError, decodeErrorBody(t, w).ErrorType)
	})

	t.Run("missing direction returns 400", func(t *testing.T) {
		svc, _ := newTestService(t)
		w := doGet(newTestRouter(svc), "/v1/items/events", url.Values{"item_id": {testItemID}})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestService_HandleHashRoutes(t *testing.T) {
	records := []storage.Record{
		hashRecord("A", "v3", "h3"),
		hashRecord("A", "v2", "h2"),
		hashRecord("B", "v1", "h1"),
	}

	t.Run("latest hash map", func(t *testing.T) {
		svc, store := newTestService(t)
		store.EXPECT().
			Query(mock.Anything, latestHashQuery(testSourceID)).
			Return(&storage.Page{Records: records}, nil).
			Once()

		w := doGet(newTestRouter(svc), "/v1/sources/hashes/latest", url.Values{"source_id": {testSourceID}})
		require.Equal(t, http.StatusOK, w.Code)

		var body LatestHashesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, testSourceID, body.SourceID)
		require.Equal(t, map[string]string{"A": "h3", "B": "h1"}, body.Hashes)
	})

	t.Run("full hash map", func(t *testing.T) {
		svc, store := newTestService(t)
		store.EXPECT().
			Query(mock.Anything, latestHashQuery(testSourceID)).
			Return(&storage.Page{Records: records}, nil).
			Once()

		w := doGet(newTestRouter(svc), "/v1/sources/hashes", url.Values{"source_id": {testSourceID}})
		require.Equal(t, http.StatusOK, w.Code)

		var body FullHashesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, map[string][]string{"A": {"h3", "h2"}, "B": {"h1"}}, body.Hashes)
	})

	t.Run("all event hashes", func(t *testing.T) {
		svc, store := newTestService(t)
		store.EXPECT().
			Query(mock.Anything, mock.MatchedBy(func(q storage.Query) bool {
				return q.Index == storage.HashIndexName && q.SortKeyPrefix == "" && q.Direction == storage.IndexOrder
			})).
			Return(&storage.Page{Records: records}, nil).
			Once()

		w := doGet(newTestRouter(svc), "/v1/sources/hashes/all", url.Values{"source_id": {testSourceID}})
		require.Equal(t, http.StatusOK, w.Code)

		var body EventHashesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Hashes, 3)
	})

	t.Run("missing source_id returns 400", func(t *testing.T) {
		svc, _ := newTestService(t)
		for _, path := range []string{"/v1/sources/hashes", "/v1/sources/hashes/latest", "/v1/sources/hashes/all"} {
			w := doGet(newTestRouter(svc), path, nil)
			require.Equal(t, http.StatusBadRequest, w.Code, path)
		}
	})

	t.Run("store failure returns 502", func(t *testing.T) {
		svc, store := newTestService(t)
		store.EXPECT().
			Query(mock.Anything, latestHashQuery(testSourceID)).
			Return(nil, errors.New("throttled")).
			Once()

		w := doGet(newTestRouter(svc), "/v1/sources/hashes/latest", url.Values{"source_id": {testSourceID}})
		require.Equal(t, http.StatusBadGateway, w.Code)
		require.Equal(t, httperr.HttpQueryFailedError, decodeErrorBody(t, w).ErrorType)
	})
}

func TestService_HandleGetItem_QueryTimeout(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	svc := NewService(query.NewService(store, query.Options{PageSize: 10}), 20*time.Millisecond)

	store.EXPECT().
		Query(mock.Anything, itemQuery(testItemID, storage.OldestFirst)).
		RunAndReturn(func(ctx context.Context, _ storage.Query) (*storage.Page, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).
		Once()

	w := doGet(newTestRouter(svc), "/v1/items", url.Values{"item_id": {testItemID}})
	require.Equal(t, http.StatusGatewayTimeout, w.Code)
	require.Equal(t, httperr.HttpQueryFailedError, decodeErrorBody(t, w).ErrorType)
}
