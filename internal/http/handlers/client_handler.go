// Client HTTP handlers.
//
// This file exposes REST endpoints for client resources:
//   - POST   /clients   (create)
//   - GET    /clients   (list, ETag support)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jmih/go-crm-backend/internal/domain"
	"github.com/jmih/go-crm-backend/internal/http/middleware"
	"github.com/jmih/go-crm-backend/internal/repo"
	"github.com/jmih/go-crm-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ClientService defines client operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ClientService interface {
	// Create persists a new client from caller-settable attributes.
	Create(ctx context.Context, in services.ClientInput) (*domain.Client, error)
	// List returns every client, most recently created first.
	List(ctx context.Context) ([]domain.Client, error)
}

// TicketService defines ticket operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TicketService interface {
	// Create persists a new ticket after checking the client exists.
	Create(ctx context.Context, in services.TicketInput) (*domain.Ticket, error)
	// List returns tickets newest-first, optionally filtered by status
	// and/or owning client.
	List(ctx context.Context, status string, clientID uint) ([]domain.Ticket, error)
	// UpdateStatus overwrites a ticket's status and refreshes updated_at.
	UpdateStatus(ctx context.Context, id uint, status string) (*domain.Ticket, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for clients and tickets. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	clientSvc ClientService
	ticketSvc TicketService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(clientSvc ClientService, ticketSvc TicketService) *Handlers {
	return &Handlers{clientSvc: clientSvc, ticketSvc: ticketSvc}
}

//
// DTOs
//

// CreateClientRequest is the JSON payload for creating a client.
// Timestamps and ids are server-assigned and not part of the payload.
type CreateClientRequest struct {
	// Name is the customer name (required, non-empty).
	Name string `json:"name" binding:"required" example:"Ivan"`
	// Phone is an optional contact number.
	Phone *string `json:"phone" example:"79990000000"`
	// City is an optional city / branch label.
	City *string `json:"city" example:"SPB"`
	// Source records where the client came from (QR, ads, bot, walk-in...).
	Source *string `json:"source" example:"qr"`
	// TgID is the Telegram user id when the client came through the bot.
	TgID *string `json:"tg_id" example:"123456789"`
}

//
// Handlers
//

// CreateClient godoc
// @ID          createClient
// @Summary     Create a new client
// @Description Persists a customer record and returns it with the server-assigned id and timestamp.
// @Tags        Clients
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateClientRequest  true  "Create client payload"
//
// @Success     201  {object}  domain.Client
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clients [post]
func (h *Handlers) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "name is required")
		return
	}

	client, err := h.clientSvc.Create(c.Request.Context(), services.ClientInput{
		Name:   req.Name,
		Phone:  req.Phone,
		City:   req.City,
		Source: req.Source,
		TgID:   req.TgID,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyName) {
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "name must not be empty")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	middleware.ClientsCreated.Inc()
	ok(c, http.StatusCreated, client)
}

// ListClients godoc
// @ID          listClients
// @Summary     List clients
// @Description Returns every client ordered by id descending. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Clients
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {array}  domain.Client
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /clients [get]
func (h *Handlers) ListClients(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if db := h.clientDB(); db != nil {
		count, maxTS, err := repo.ClientsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"clients:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	clients, err := h.clientSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, clients)
}

// clientDB exposes the concrete service's DB handle for the ETag pre-check.
// Returns nil when the handler is backed by a test double.
func (h *Handlers) clientDB() *gorm.DB {
	if svc, ok := h.clientSvc.(*services.ClientService); ok {
		return svc.DB
	}
	return nil
}
