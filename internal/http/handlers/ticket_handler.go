// Ticket HTTP handlers.
//
// This file exposes REST endpoints for ticket resources:
//   - POST   /tickets              (create; 404 when the client is unknown)
//   - GET    /tickets              (list with optional status/client_id filters)
//   - PATCH  /tickets/{id}/status  (status change against the closed set)
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmih/go-crm-backend/internal/domain"
	"github.com/jmih/go-crm-backend/internal/http/middleware"
	"github.com/jmih/go-crm-backend/internal/repo"
	"github.com/jmih/go-crm-backend/internal/services"
	"github.com/jmih/go-crm-backend/internal/utils"
)

//
// DTOs
//

// CreateTicketRequest is the JSON payload for creating a ticket.
// Status is not part of the payload: new tickets always start as "new".
type CreateTicketRequest struct {
	// ClientID references an existing client (checked server-side).
	ClientID uint `json:"client_id" binding:"required" example:"1"`
	// Type is the free-text category (order / question / warranty / job / other).
	Type string `json:"type" binding:"required" example:"order"`
	// LastComment optionally describes what the client wants.
	LastComment *string `json:"last_comment" example:"wants a warranty replacement"`
}

// UpdateTicketStatusRequest is the JSON payload for the status-change endpoint.
type UpdateTicketStatusRequest struct {
	// Status must be one of: new, in_progress, waiting, closed.
	Status string `json:"status" binding:"required" example:"closed"`
}

// TicketResponse is the wire representation of a ticket, embedding a short
// projection of the owning client. AssigneeID is internal-only for now and
// deliberately absent.
type TicketResponse struct {
	ID          uint                `json:"id"`
	ClientID    uint                `json:"client_id"`
	Type        string              `json:"type"`
	Status      string              `json:"status"`
	LastComment *string             `json:"last_comment"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Client      *domain.ClientShort `json:"client,omitempty"`
}

// toTicketResponse maps a domain ticket (with its client preloaded) onto the
// wire shape.
func toTicketResponse(t domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:          t.ID,
		ClientID:    t.ClientID,
		Type:        t.Type,
		Status:      t.Status,
		LastComment: t.LastComment,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Client.ID != 0 {
		short := t.Client.Short()
		resp.Client = &short
	}
	return resp
}

// toTicketResponses maps a slice, preserving order and returning an empty
// (non-nil) slice for empty input so JSON stays `[]` rather than `null`.
func toTicketResponses(ts []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTicketResponse(t))
	}
	return out
}

//
// Handlers
//

// CreateTicket godoc
// @ID          createTicket
// @Summary     Create a new ticket
// @Description Persists a support ticket for an existing client. The ticket always starts with status "new".
// @Tags        Tickets
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateTicketRequest  true  "Create ticket payload"
//
// @Success     201  {object}  handlers.TicketResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Client not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tickets [post]
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "client_id and type are required")
		return
	}

	ticket, err := h.ticketSvc.Create(c.Request.Context(), services.TicketInput{
		ClientID:    req.ClientID,
		Type:        req.Type,
		LastComment: req.LastComment,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "client not found")
		case errors.Is(err, services.ErrEmptyType):
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "type must not be empty")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}

	middleware.TicketsCreated.Inc()
	ok(c, http.StatusCreated, toTicketResponse(*ticket))
}

// ListTickets godoc
// @ID          listTickets
// @Summary     List tickets
// @Description Returns tickets newest-first with an embedded client projection. Optional equality filters on status and client_id combine conjunctively. Supports weak ETag via If-None-Match.
// @Tags        Tickets
// @Produce     json
//
// @Param       status         query   string  false "Filter by status"     Enums(new, in_progress, waiting, closed)
// @Param       client_id      query   int     false "Filter by owning client id" minimum(1)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  handlers.TicketResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tickets [get]
func (h *Handlers) ListTickets(c *gin.Context) {
	ctx := c.Request.Context()
	status := c.Query("status")
	clientID := uint(utils.AtoiDefault(c.Query("client_id"), 0))

	// ETag pre-check (best effort).
	if svc, okSvc := h.ticketSvc.(*services.TicketService); okSvc && svc.DB != nil {
		f := repo.TicketFilter{Status: status, ClientID: clientID}
		count, maxTS, err := repo.TicketsStats(ctx, svc.DB, f)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"tickets:%s:%d:%d:%d"`, status, clientID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	tickets, err := h.ticketSvc.List(ctx, status, clientID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, toTicketResponses(tickets))
}

// UpdateTicketStatus godoc
// @ID          updateTicketStatus
// @Summary     Change a ticket's status
// @Description Overwrites the status of a ticket and refreshes updated_at. The status must be one of the closed set.
// @Tags        Tickets
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                                   true  "Ticket ID"  minimum(1)
// @Param       body  body  handlers.UpdateTicketStatusRequest    true  "New status"
//
// @Success     200  {object} handlers.TicketResponse
// @Failure     404  {object} handlers.ErrorResponse "Ticket not found"
// @Failure     422  {object} handlers.ErrorResponse "Validation failed"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tickets/{id}/status [patch]
func (h *Handlers) UpdateTicketStatus(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "ticket id must be a positive integer")
		return
	}

	var req UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "status is required")
		return
	}

	ticket, err := h.ticketSvc.UpdateStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		case errors.Is(err, services.ErrInvalidStatus):
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed,
				"status must be one of: new, in_progress, waiting, closed")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	middleware.TicketStatusChanges.WithLabelValues(req.Status).Inc()
	ok(c, http.StatusOK, toTicketResponse(*ticket))
}
