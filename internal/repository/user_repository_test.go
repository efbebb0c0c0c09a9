package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	if !isUniqueViolation(unique) {
		t.Error("expected 23505 to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert failed: %w", unique)) {
		t.Error("expected a wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Error("plain error is not a unique violation")
	}
}
