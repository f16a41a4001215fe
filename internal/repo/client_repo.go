// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Client model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a client is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jmih/go-crm-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateClient inserts a new client row. The ID is assigned by the store and
// CreatedAt is set to UTC; both are never accepted from input.
//
// On success, it returns the persisted Client. On failure, it returns a DB error.
func CreateClient(ctx context.Context, db *gorm.DB, name string, phone, city, source, tgID *string) (*domain.Client, error) {
	c := &domain.Client{
		Name:      name,
		Phone:     phone,
		City:      city,
		Source:    source,
		TgID:      tgID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListClients returns every client row ordered by id descending (most
// recently created first). It returns an empty slice when the table is
// empty. On DB error, it returns the error.
func ListClients(ctx context.Context, db *gorm.DB) ([]domain.Client, error) {
	out := []domain.Client{}
	err := db.WithContext(ctx).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// GetClient fetches a single client by its ID. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetClient(ctx context.Context, db *gorm.DB, id uint) (*domain.Client, error) {
	var c domain.Client
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
