// Package services – TicketService
//
// This file implements the TicketService, which governs the ticket lifecycle:
// creation (with an explicit client existence check), filtered listing, and
// status changes against the closed status set. Service-level errors
// (ErrClientNotFound, ErrTicketNotFound, ErrInvalidStatus) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jmih/go-crm-backend/internal/domain"
	"github.com/jmih/go-crm-backend/internal/repo"
)

// TicketInput carries the caller-settable attributes of a new ticket.
// Status is always "new" at creation regardless of input; timestamps and ids
// are server-assigned.
type TicketInput struct {
	ClientID    uint
	Type        string
	LastComment *string
}

// TicketService implements the use-cases around support tickets. It is
// context-aware and opens a transaction per write so the existence check and
// the insert are atomic.
type TicketService struct {
	// DB is the database handle used for all ticket operations.
	// The handle may be a plain *gorm.DB or a transaction-bound handle.
	DB *gorm.DB
}

// NewTicketService constructs a TicketService bound to db.
func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{DB: db}
}

// Create persists a new ticket for an existing client.
//
// Semantics and validation:
//   - in.Type is trimmed and must be non-empty; otherwise ErrEmptyType.
//   - in.ClientID must reference an existing client; otherwise
//     ErrClientNotFound and nothing is written.
//   - The stored ticket always starts with status "new" and
//     created_at == updated_at.
//
// Concurrency & atomicity:
//   - The existence check and the insert run inside a transaction, so the
//     narrow check-then-insert window cannot observe a half-written state.
func (s *TicketService) Create(ctx context.Context, in TicketInput) (*domain.Ticket, error) {
	ticketType := strings.TrimSpace(in.Type)
	if ticketType == "" {
		return nil, ErrEmptyType
	}

	var created *domain.Ticket
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := repo.GetClient(ctx, tx, in.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		t, err := repo.CreateTicket(ctx, tx, client.ID, ticketType, normalizeOpt(in.LastComment))
		if err != nil {
			return err
		}
		t.Client = *client
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns tickets newest-first with their owning client eager-loaded.
// status filters by exact status when non-empty; clientID filters by owning
// client when non-zero. Both filters combine conjunctively.
func (s *TicketService) List(ctx context.Context, status string, clientID uint) ([]domain.Ticket, error) {
	return repo.ListTickets(ctx, s.DB, repo.TicketFilter{Status: status, ClientID: clientID})
}

// UpdateStatus overwrites the status of ticket id and refreshes updated_at.
//
// Semantics:
//   - status must be one of the closed set (new, in_progress, waiting,
//     closed); otherwise ErrInvalidStatus.
//   - id must reference an existing ticket; otherwise ErrTicketNotFound and
//     nothing is written.
//
// On success, it returns the freshly loaded ticket including its client.
func (s *TicketService) UpdateStatus(ctx context.Context, id uint, status string) (*domain.Ticket, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if err := repo.UpdateTicketStatus(ctx, s.DB, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return repo.GetTicket(ctx, s.DB, id)
}
