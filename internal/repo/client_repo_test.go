package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jmih/go-crm-backend/internal/domain"
)

func newClientRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("client_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func strptr(s string) *string { return &s }

func TestCreateClient_Error_NoTable(t *testing.T) {
	db := newClientRepoDB(t /* no migrations */)
	c, err := CreateClient(context.Background(), db, "Ivan", nil, nil, nil, nil)
	if err == nil || c != nil {
		t.Fatalf("expected error creating without table, got client=%v err=%v", c, err)
	}
}

func TestCreateClient_Success_PersistsAndSetsFields(t *testing.T) {
	db := newClientRepoDB(t, &domain.Client{})

	start := time.Now().UTC().Add(-time.Minute)
	c, err := CreateClient(context.Background(), db, "Ivan",
		strptr("79990000000"), strptr("SPB"), strptr("qr"), strptr("123456789"))
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if c.ID == 0 || c.Name != "Ivan" {
		t.Fatalf("unexpected Client fields: %+v", c)
	}
	if c.Phone == nil || *c.Phone != "79990000000" || c.City == nil || *c.City != "SPB" {
		t.Fatalf("optional fields not persisted: %+v", c)
	}
	if c.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt not set: %v", c.CreatedAt)
	}

	// Re-read from the store to confirm the insert landed.
	got, err := GetClient(context.Background(), db, c.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.Name != "Ivan" || got.Source == nil || *got.Source != "qr" {
		t.Fatalf("reloaded client mismatch: %+v", got)
	}
}

func TestCreateClient_NilOptionalsStayNil(t *testing.T) {
	db := newClientRepoDB(t, &domain.Client{})

	c, err := CreateClient(context.Background(), db, "Olga", nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	got, err := GetClient(context.Background(), db, c.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.Phone != nil || got.City != nil || got.Source != nil || got.TgID != nil {
		t.Fatalf("expected NULL optionals, got %+v", got)
	}
}

func TestListClients_EmptyAndOrdering(t *testing.T) {
	db := newClientRepoDB(t, &domain.Client{})
	ctx := context.Background()

	// Empty table returns a non-nil empty slice.
	out, err := ListClients(ctx, db)
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}

	for _, name := range []string{"first", "second", "third"} {
		if _, err := CreateClient(ctx, db, name, nil, nil, nil, nil); err != nil {
			t.Fatalf("seed %q: %v", name, err)
		}
	}

	out, err = ListClients(ctx, db)
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 clients, got %d", len(out))
	}
	// id DESC: newest insert first
	if out[0].Name != "third" || out[2].Name != "first" {
		t.Fatalf("unexpected order: %v, %v, %v", out[0].Name, out[1].Name, out[2].Name)
	}
}

func TestGetClient_NotFound(t *testing.T) {
	db := newClientRepoDB(t, &domain.Client{})
	_, err := GetClient(context.Background(), db, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
