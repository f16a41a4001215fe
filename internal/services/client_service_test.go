package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/jmih/go-crm-backend/internal/domain"
)

// ----- Fake repo -----

type fakeClientRepo struct {
	// capture args
	createName   string
	createPhone  *string
	createCity   *string
	createSource *string
	createTgID   *string
	createErr    error

	listCalled bool
	listItems  []domain.Client
	listErr    error
}

func (r *fakeClientRepo) CreateClient(ctx context.Context, db *gorm.DB, name string, phone, city, source, tgID *string) (*domain.Client, error) {
	r.createName = name
	r.createPhone, r.createCity, r.createSource, r.createTgID = phone, city, source, tgID
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &domain.Client{ID: 1, Name: name, Phone: phone, City: city, Source: source, TgID: tgID}, nil
}

func (r *fakeClientRepo) ListClients(ctx context.Context, db *gorm.DB) ([]domain.Client, error) {
	r.listCalled = true
	return r.listItems, r.listErr
}

func (r *fakeClientRepo) GetClient(ctx context.Context, db *gorm.DB, id uint) (*domain.Client, error) {
	return nil, gorm.ErrRecordNotFound
}

// ----- Tests -----

func TestNewClientService_Wiring(t *testing.T) {
	r := &fakeClientRepo{}
	s := NewClientService(nil, r)

	if s.DB != nil { // DB can be nil in tests
		t.Fatalf("expected nil DB, got %v", s.DB)
	}
	if s.Repo != ClientRepo(r) {
		t.Fatalf("repo not set")
	}
}

func TestClientCreate_EmptyName(t *testing.T) {
	r := &fakeClientRepo{}
	s := NewClientService(nil, r)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(context.Background(), ClientInput{Name: name})
		if !errors.Is(err, ErrEmptyName) {
			t.Fatalf("Create(%q): expected ErrEmptyName, got %v", name, err)
		}
	}
	if r.createName != "" {
		t.Fatalf("repo must not be called on validation failure")
	}
}

func TestClientCreate_TrimsAndNormalizes(t *testing.T) {
	r := &fakeClientRepo{}
	s := NewClientService(nil, r)

	phone := "  79990000000 "
	blank := "   "
	c, err := s.Create(context.Background(), ClientInput{
		Name:  "  Ivan  ",
		Phone: &phone,
		City:  &blank, // blank collapses to NULL
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Name != "Ivan" || r.createName != "Ivan" {
		t.Fatalf("name not trimmed: %q / %q", c.Name, r.createName)
	}
	if r.createPhone == nil || *r.createPhone != "79990000000" {
		t.Fatalf("phone not trimmed: %v", r.createPhone)
	}
	if r.createCity != nil {
		t.Fatalf("blank city should collapse to nil, got %v", r.createCity)
	}
	if r.createSource != nil || r.createTgID != nil {
		t.Fatalf("absent optionals must stay nil")
	}
}

func TestClientCreate_RepoErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	r := &fakeClientRepo{createErr: boom}
	s := NewClientService(nil, r)

	_, err := s.Create(context.Background(), ClientInput{Name: "Ivan"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestClientList_Delegates(t *testing.T) {
	r := &fakeClientRepo{listItems: []domain.Client{{ID: 2, Name: "b"}, {ID: 1, Name: "a"}}}
	s := NewClientService(nil, r)

	out, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !r.listCalled || len(out) != 2 || out[0].ID != 2 {
		t.Fatalf("unexpected list result: %+v", out)
	}
}

func TestNormalizeOpt(t *testing.T) {
	if normalizeOpt(nil) != nil {
		t.Fatalf("nil in, nil out")
	}
	blank := "  "
	if normalizeOpt(&blank) != nil {
		t.Fatalf("blank should collapse to nil")
	}
	v := " x "
	got := normalizeOpt(&v)
	if got == nil || *got != "x" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
}
