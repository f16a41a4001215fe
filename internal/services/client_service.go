// Package services – ClientService
//
// This file implements the ClientService, which manages customer records.
// It normalizes and validates input (the name must be non-empty) and
// coordinates repository operations for creating and listing clients.
// Clients are immutable after creation, so the surface is intentionally
// small: no update or delete use-cases exist.
//
// Service-level errors (e.g., ErrEmptyName) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/jmih/go-crm-backend/internal/domain"
)

// ClientRepo defines the repository contract required by ClientService.
// Implementations are responsible for persistence of client records.
type ClientRepo interface {
	// CreateClient inserts a new client row with a server-assigned id and
	// creation timestamp.
	CreateClient(ctx context.Context, db *gorm.DB, name string, phone, city, source, tgID *string) (*domain.Client, error)

	// ListClients returns all clients ordered by id descending.
	ListClients(ctx context.Context, db *gorm.DB) ([]domain.Client, error)

	// GetClient fetches a client by ID.
	GetClient(ctx context.Context, db *gorm.DB, id uint) (*domain.Client, error)
}

// ClientInput carries the caller-settable attributes of a new client.
// Timestamps and ids are always server-assigned and deliberately absent.
type ClientInput struct {
	Name   string
	Phone  *string
	City   *string
	Source *string
	TgID   *string
}

// ClientService provides client-level operations: creating a customer record
// and listing the whole table (the CRM is small by design; no pagination).
type ClientService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the client repository used by this service.
	Repo ClientRepo
}

// NewClientService constructs a ClientService bound to db and r.
func NewClientService(db *gorm.DB, r ClientRepo) *ClientService {
	return &ClientService{DB: db, Repo: r}
}

// Create persists a new client. The name is trimmed and must be non-empty;
// otherwise ErrEmptyName is returned and nothing is written. Optional fields
// are trimmed and stored as NULL when blank.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.Repo.CreateClient(ctx, s.DB, name,
		normalizeOpt(in.Phone),
		normalizeOpt(in.City),
		normalizeOpt(in.Source),
		normalizeOpt(in.TgID),
	)
}

// List returns all clients, most recently created first.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.Repo.ListClients(ctx, s.DB)
}

// normalizeOpt trims an optional string and collapses blank values to nil so
// the store holds NULL rather than "".
func normalizeOpt(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
