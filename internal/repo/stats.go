// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jmih/go-crm-backend/internal/domain"
)

// ClientsStats returns aggregate metadata for the clients table: the total
// number of rows and the maximum CreatedAt timestamp among those rows
// (clients are immutable, so CreatedAt is the freshest signal).
//
// Return values:
//   - count:  total clients
//   - maxTS:  pointer to the greatest CreatedAt, or nil if no rows
//   - err:    database error, if any
func ClientsStats(ctx context.Context, db *gorm.DB) (count int64, maxTS *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Client{})

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}

// TicketsStats returns aggregate metadata for tickets matching the filter:
// the total number of rows and the maximum UpdatedAt timestamp among those
// rows. Status changes bump UpdatedAt, so the pair (count, maxTS) changes
// whenever the filtered listing would change.
//
// Return values:
//   - count:  total tickets matching f
//   - maxTS:  pointer to the greatest UpdatedAt, or nil if no rows
//   - err:    database error, if any
func TicketsStats(ctx context.Context, db *gorm.DB, f TicketFilter) (count int64, maxTS *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Ticket{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
