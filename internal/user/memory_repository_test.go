package user

import (
	"context"
	"errors"
	"testing"
	"time"
)

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(DateFormat, value)
	if err != nil {
		t.Fatalf("parse date %s: %v", value, err)
	}
	return d
}

func TestMemoryRepositoryEnforcesUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := User{Name: "Ada", Age: 30, Email: "ada@x.com", Phone: "+1", DateOfBirth: mustParseDate(t, "1990-05-14")}
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := repo.Create(ctx, User{Name: "Grace", Email: "ada@x.com", Phone: "+2"})
	var uerr *Error
	if !errors.As(err, &uerr) || uerr.Field != "email" {
		t.Fatalf("expected email conflict, got %v", err)
	}

	_, err = repo.Create(ctx, User{Name: "Grace", Email: "grace@x.com", Phone: "+1"})
	if !errors.As(err, &uerr) || uerr.Field != "phone" {
		t.Fatalf("expected phone conflict, got %v", err)
	}
}

func TestMemoryRepositoryDeleteReportsRemoval(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, User{Name: "Ada", Email: "ada@x.com", Phone: "+1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := repo.Delete(ctx, created.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
	}

	removed, err = repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("absent delete: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for absent id")
	}
}
