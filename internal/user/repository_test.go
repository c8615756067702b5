package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyUniqueViolation(t *testing.T) {
	cases := []struct {
		constraint string
		field      string
		message    string
	}{
		{"users_email_key", "email", MsgEmailTaken},
		{"users_phone_number_key", "phone", MsgPhoneTaken},
	}

	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			err := classifyStoreError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: tc.constraint})
			if err.Kind != KindConflict {
				t.Fatalf("expected conflict, got %s", err.Kind)
			}
			if err.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, err.Field)
			}
			if err.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, err.Message)
			}
			if err.Code != codeUniqueViolation {
				t.Fatalf("expected code preserved, got %q", err.Code)
			}
		})
	}
}

func TestClassifyStoreUnavailable(t *testing.T) {
	for _, code := range []string{codeInvalidPassword, codeInvalidCatalog, "08006"} {
		t.Run(code, func(t *testing.T) {
			err := classifyStoreError(&pgconn.PgError{Code: code})
			if err.Kind != KindStoreUnavailable {
				t.Fatalf("expected store_unavailable for %s, got %s", code, err.Kind)
			}
			if err.Code != code {
				t.Fatalf("expected code preserved, got %q", err.Code)
			}
		})
	}
}

func TestClassifyTimeout(t *testing.T) {
	err := classifyStoreError(fmt.Errorf("query: %w", context.DeadlineExceeded))
	if err.Kind != KindStoreUnavailable {
		t.Fatalf("expected store_unavailable for timeout, got %s", err.Kind)
	}
}

func TestClassifyUnknown(t *testing.T) {
	err := classifyStoreError(errors.New("broken pipe to somewhere"))
	if err.Kind != KindUnknown {
		t.Fatalf("expected unknown, got %s", err.Kind)
	}

	err = classifyStoreError(&pgconn.PgError{Code: "42P01"})
	if err.Kind != KindUnknown {
		t.Fatalf("expected unknown for unclassified pg code, got %s", err.Kind)
	}
}
