// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Ticket model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jmih/go-crm-backend/internal/domain"
)

// TicketFilter holds the optional equality filters applied when listing
// tickets. Zero values mean "no filter"; both filters combine conjunctively.
type TicketFilter struct {
	Status   string
	ClientID uint
}

// CreateTicket inserts a new ticket row with status "new" and both
// timestamps set to the same UTC instant. The referenced client is assumed
// to exist; callers (the service layer) perform the existence check.
func CreateTicket(ctx context.Context, db *gorm.DB, clientID uint, ticketType string, lastComment *string) (*domain.Ticket, error) {
	now := time.Now().UTC()
	t := &domain.Ticket{
		ClientID:    clientID,
		Type:        ticketType,
		Status:      domain.StatusNew,
		LastComment: lastComment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// ListTickets returns tickets ordered by creation time descending (id
// descending as a deterministic tiebreak), each with its owning client
// eager-loaded. The filter's Status and ClientID are applied as equality
// predicates when set.
func ListTickets(ctx context.Context, db *gorm.DB, f TicketFilter) ([]domain.Ticket, error) {
	out := []domain.Ticket{}
	q := db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC, id DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	err := q.Find(&out).Error
	return out, err
}

// GetTicket fetches a ticket by ID with its client eager-loaded. If the
// record does not exist, it returns ErrNotFound. On other DB errors, the raw
// error is returned.
func GetTicket(ctx context.Context, db *gorm.DB, id uint) (*domain.Ticket, error) {
	var t domain.Ticket
	err := db.WithContext(ctx).
		Preload("Client").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTicketStatus overwrites the status of the ticket identified by id and
// refreshes updated_at. If no rows are affected (ticket missing), it returns
// ErrNotFound. On DB error, the raw error is returned.
func UpdateTicketStatus(ctx context.Context, db *gorm.DB, id uint, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
