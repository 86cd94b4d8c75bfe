package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	orig := NewForbidden("nope")
	mapped := ToDomainError(orig)
	if mapped.Code != CodeForbidden || mapped.HTTPStatus != http.StatusForbidden {
		t.Fatalf("unexpected mapping %+v", mapped)
	}
}

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != CodeNotFound || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected mapping %+v", mapped)
	}
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("boom")
	mapped := ToDomainError(cause)
	if mapped.Code != CodeInternal || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping %+v", mapped)
	}
	if !errors.Is(mapped, cause) {
		t.Fatal("cause must stay reachable via errors.Is")
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("nil must map to nil")
	}
}
