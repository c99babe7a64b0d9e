package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"tableorder-backend/internal/auth"
	"tableorder-backend/internal/events"
	"tableorder-backend/internal/notification"
	"tableorder-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	tokens   *auth.Tokens
	events   events.Publisher
	notifier *notification.WorkerPool
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, tokens *auth.Tokens, pub events.Publisher, notifier *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Handler{
		store:    s,
		tokens:   tokens,
		events:   pub,
		notifier: notifier,
		webpush:  webpushOptions,
	}
}

// publish pushes a row-change event to the change feed. Feed failures are
// logged and never fail the request that caused them.
func (h *Handler) publish(c *gin.Context, entity, action string, row any) {
	e := events.Event{Entity: entity, Action: action, Row: row}
	if err := h.events.Publish(c.Request.Context(), e); err != nil {
		log.Printf("Failed to publish %s event: %v", e.RoutingKey(), err)
	}
}

// notify dispatches a staff push notification for a table.
func (h *Handler) notify(tableNumber int, message string) {
	if h.notifier == nil {
		return
	}
	h.notifier.Dispatch(notification.Job{TableNumber: tableNumber, Message: message})
}

// writeStoreError maps store errors onto HTTP statuses.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrTableExists),
		errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrAggregateMismatch),
		errors.Is(err, store.ErrItemUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidRequestType),
		errors.Is(err, store.ErrAmountNotAllowed),
		errors.Is(err, store.ErrEmptyOrder),
		errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, store.ErrUnknownMenuItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
