package projection

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	httperr "github.com/blitzfilter/item-read/internal/core/errors"
	"github.com/blitzfilter/item-read/internal/core/storage"
	"github.com/blitzfilter/item-read/internal/query"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all read API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/items", s.HandleGetItem)
	r.GET("/v1/items/events", s.HandleGetItemEvents)

	r.GET("/v1/sources/hashes", s.HandleGetFullHashMap)
	r.GET("/v1/sources/hashes/latest", s.HandleGetLatestHashMap)
	r.GET("/v1/sources/hashes/all", s.HandleGetAllEventHashes)
}

// HandleGetItem handles GET /v1/items?item_id=
func (s *Service) HandleGetItem(c *gin.Context) {
	var req ItemRequest
	if !bindQuery(c, &req) {
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	item, err := s.GetMaterializedItem(ctx, req.ItemID)
	if err != nil {
		s.writeReadError(c, "Failed to read item", err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpItemNotFoundError,
			Message:   "Item has no events",
			Details:   req.ItemID,
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// HandleGetItemEvents handles GET /v1/items/events?item_id=&direction=
func (s *Service) HandleGetItemEvents(c *gin.Context) {
	var req ItemEventsRequest
	if !bindQuery(c, &req) {
		return
	}

	dir, err := storage.ParseDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid direction",
			Details:   err.Error(),
		})
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	events, err := s.GetItemEvents(ctx, req.ItemID, dir)
	if err != nil {
		s.writeReadError(c, "Failed to read item events", err)
		return
	}

	c.JSON(http.StatusOK, ItemEventsResponse{
		ItemID:    req.ItemID,
		Direction: dir.String(),
		Events:    events,
	})
}

// HandleGetLatestHashMap handles GET /v1/sources/hashes/latest?source_id=
func (s *Service) HandleGetLatestHashMap(c *gin.Context) {
	var req SourceRequest
	if !bindQuery(c, &req) {
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	hashes, err := s.GetLatestHashMap(ctx, req.SourceID)
	if err != nil {
		s.writeReadError(c, "Failed to build latest hash map", err)
		return
	}

	c.JSON(http.StatusOK, LatestHashesResponse{SourceID: req.SourceID, Hashes: hashes})
}

// HandleGetFullHashMap handles GET /v1/sources/hashes?source_id=
func (s *Service) HandleGetFullHashMap(c *gin.Context) {
	var req SourceRequest
	if !bindQuery(c, &req) {
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	hashes, err := s.GetFullHashMap(ctx, req.SourceID)
	if err != nil {
		s.writeReadError(c, "Failed to build full hash map", err)
		return
	}

	c.JSON(http.StatusOK, FullHashesResponse{SourceID: req.SourceID, Hashes: hashes})
}

// HandleGetAllEventHashes handles GET /v1/sources/hashes/all?source_id=
func (s *Service) HandleGetAllEventHashes(c *gin.Context) {
	var req SourceRequest
	if !bindQuery(c, &req) {
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	hashes, err := s.GetAllEventHashes(ctx, req.SourceID)
	if err != nil {
		s.writeReadError(c, "Failed to read event hashes", err)
		return
	}

	c.JSON(http.StatusOK, EventHashesResponse{SourceID: req.SourceID, Hashes: hashes})
}

func (s *Service) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(c.Request.Context(), s.queryTimeout)
	}
	return context.WithCancel(c.Request.Context())
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return false
	}
	return true
}

func (s *Service) writeReadError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, query.ErrMissingID), errors.Is(err, query.ErrInvalidDirection):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   message,
			Details:   err.Error(),
		})
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("[Projection] Read timed out", "path", c.FullPath(), "timeout", s.queryTimeout, "error", err)
		c.JSON(http.StatusGatewayTimeout, httperr.ErrorResponse{
			ErrorType: httperr.HttpQueryFailedError,
			Message:   message,
			Details:   err.Error(),
		})
	case errors.Is(err, query.ErrQueryFailed):
		slog.Error("[Projection] Event store query failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadGateway, httperr.ErrorResponse{
			ErrorType: httperr.HttpQueryFailedError,
			Message:   message,
			Details:   err.Error(),
		})
	default:
		slog.Error("[Projection] Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}
