package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jmih/go-crm-backend/internal/domain"
)

func newStatsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("stats_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Client{}, &domain.Ticket{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestClientsStats_EmptyAndPopulated(t *testing.T) {
	db := newStatsDB(t)
	ctx := context.Background()

	count, maxTS, err := ClientsStats(ctx, db)
	if err != nil {
		t.Fatalf("ClientsStats: %v", err)
	}
	if count != 0 || maxTS != nil {
		t.Fatalf("expected (0, nil) on empty table, got (%d, %v)", count, maxTS)
	}

	older := &domain.Client{Name: "old", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	newer := &domain.Client{Name: "new", CreatedAt: time.Now().UTC()}
	for _, c := range []*domain.Client{older, newer} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	count, maxTS, err = ClientsStats(ctx, db)
	if err != nil {
		t.Fatalf("ClientsStats: %v", err)
	}
	if count != 2 || maxTS == nil {
		t.Fatalf("expected (2, non-nil), got (%d, %v)", count, maxTS)
	}
	if maxTS.Before(older.CreatedAt) || maxTS.Sub(newer.CreatedAt) > time.Second {
		t.Fatalf("maxTS should match the newest row: %v vs %v", maxTS, newer.CreatedAt)
	}
}

func TestTicketsStats_FilterAwareAndStatusBump(t *testing.T) {
	db := newStatsDB(t)
	ctx := context.Background()

	c, err := CreateClient(ctx, db, "Ivan", nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	t1, err := CreateTicket(ctx, db, c.ID, "order", nil)
	if err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	if _, err := CreateTicket(ctx, db, c.ID, "question", nil); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	// Unfiltered
	count, maxTS, err := TicketsStats(ctx, db, TicketFilter{})
	if err != nil || count != 2 || maxTS == nil {
		t.Fatalf("unfiltered stats: count=%d maxTS=%v err=%v", count, maxTS, err)
	}
	before := *maxTS

	// Filter that matches nothing
	count, maxTS, err = TicketsStats(ctx, db, TicketFilter{Status: domain.StatusClosed})
	if err != nil || count != 0 || maxTS != nil {
		t.Fatalf("closed filter should be empty: count=%d maxTS=%v err=%v", count, maxTS, err)
	}

	time.Sleep(5 * time.Millisecond)

	// A status change bumps updated_at, so the filtered pair moves too.
	if err := UpdateTicketStatus(ctx, db, t1.ID, domain.StatusClosed); err != nil {
		t.Fatalf("UpdateTicketStatus: %v", err)
	}
	count, maxTS, err = TicketsStats(ctx, db, TicketFilter{Status: domain.StatusClosed})
	if err != nil || count != 1 || maxTS == nil {
		t.Fatalf("closed filter after change: count=%d maxTS=%v err=%v", count, maxTS, err)
	}
	if !maxTS.After(before) {
		t.Fatalf("maxTS should advance after a status change: %v !> %v", maxTS, before)
	}
}
