package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorfMatchesSentinelByCode(t *testing.T) {
	err := Errorf(ErrInsufficientBudget, "team %s needs %d", "t1", 10)

	if !errors.Is(err, ErrInsufficientBudget) {
		t.Fatalf("expected errors.Is to match sentinel, got %v", err)
	}
	if errors.Is(err, ErrContractNotFound) {
		t.Fatal("expected different code not to match")
	}
	if KindOf(err) != KindBudget {
		t.Fatalf("expected budget kind, got %q", KindOf(err))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("outer: %w", Wrap(ErrSaveFailed, cause, "write %s", "save.json"))

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	if !errors.Is(err, ErrSaveFailed) {
		t.Fatal("expected sentinel match through wrapping")
	}
	if !IsKind(err, KindPersistence) {
		t.Fatalf("expected persistence kind, got %q", KindOf(err))
	}
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(errors.New("plain")) != "" {
		t.Fatal("expected empty kind for foreign error")
	}
	if _, ok := AsError(nil); ok {
		t.Fatal("expected nil error not to convert")
	}
}
