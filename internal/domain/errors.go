package domain

import (
	"errors"
	"fmt"
)

// Kind groups error codes by how callers are expected to react.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindBudget        Kind = "budget"
	KindStateConflict Kind = "state_conflict"
	KindNotFound      Kind = "not_found"
	KindPersistence   Kind = "persistence"
)

// Code identifies a specific failure.
type Code string

const (
	CodeInvalidRoster           Code = "INVALID_ROSTER"
	CodeInvalidConfig           Code = "INVALID_CONFIG"
	CodeInvalidArgument         Code = "INVALID_ARGUMENT"
	CodeInsufficientBudget      Code = "INSUFFICIENT_BUDGET"
	CodePlayerAlreadyContracted Code = "PLAYER_ALREADY_CONTRACTED"
	CodeListingExists           Code = "LISTING_EXISTS"
	CodeListingInactive         Code = "LISTING_INACTIVE"
	CodeOfferNotPending         Code = "OFFER_NOT_PENDING"
	CodeDoubleBooked            Code = "DOUBLE_BOOKED"
	CodeListingNotFound         Code = "LISTING_NOT_FOUND"
	CodeOfferNotFound           Code = "OFFER_NOT_FOUND"
	CodeContractNotFound        Code = "CONTRACT_NOT_FOUND"
	CodeTeamNotFound            Code = "TEAM_NOT_FOUND"
	CodePlayerNotFound          Code = "PLAYER_NOT_FOUND"
	CodeBudgetNotFound          Code = "BUDGET_NOT_FOUND"
	CodeSaveNotFound            Code = "SAVE_NOT_FOUND"
	CodeCorruptSave             Code = "CORRUPT_SAVE"
	CodeSaveFailed              Code = "SAVE_FAILED"
)

// Error is the structured error returned by every engine.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so sentinels compare by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidRoster           = &Error{Kind: KindValidation, Code: CodeInvalidRoster, Message: "lineup must have exactly five players"}
	ErrInvalidConfig           = &Error{Kind: KindValidation, Code: CodeInvalidConfig, Message: "invalid match configuration"}
	ErrInvalidArgument         = &Error{Kind: KindValidation, Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrInsufficientBudget      = &Error{Kind: KindBudget, Code: CodeInsufficientBudget, Message: "insufficient budget"}
	ErrPlayerAlreadyContracted = &Error{Kind: KindStateConflict, Code: CodePlayerAlreadyContracted, Message: "player already has an active contract"}
	ErrListingExists           = &Error{Kind: KindStateConflict, Code: CodeListingExists, Message: "player already listed"}
	ErrListingInactive         = &Error{Kind: KindStateConflict, Code: CodeListingInactive, Message: "listing is not active"}
	ErrOfferNotPending         = &Error{Kind: KindStateConflict, Code: CodeOfferNotPending, Message: "offer is not pending"}
	ErrDoubleBooked            = &Error{Kind: KindStateConflict, Code: CodeDoubleBooked, Message: "team already plays that day"}
	ErrListingNotFound         = &Error{Kind: KindStateConflict, Code: CodeListingNotFound, Message: "listing not found"}
	ErrOfferNotFound           = &Error{Kind: KindStateConflict, Code: CodeOfferNotFound, Message: "offer not found"}
	ErrContractNotFound        = &Error{Kind: KindStateConflict, Code: CodeContractNotFound, Message: "contract not found"}
	ErrTeamNotFound            = &Error{Kind: KindNotFound, Code: CodeTeamNotFound, Message: "team not found"}
	ErrPlayerNotFound          = &Error{Kind: KindNotFound, Code: CodePlayerNotFound, Message: "player not found"}
	ErrBudgetNotFound          = &Error{Kind: KindNotFound, Code: CodeBudgetNotFound, Message: "budget not initialized"}
	ErrSaveNotFound            = &Error{Kind: KindPersistence, Code: CodeSaveNotFound, Message: "save file not found"}
	ErrCorruptSave             = &Error{Kind: KindPersistence, Code: CodeCorruptSave, Message: "save file is corrupt"}
	ErrSaveFailed              = &Error{Kind: KindPersistence, Code: CodeSaveFailed, Message: "save failed"}
)

// Errorf returns a new error sharing the sentinel's kind and code with a specific message.
func Errorf(sentinel *Error, format string, args ...any) error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a copy of the sentinel.
func Wrap(sentinel *Error, cause error, format string, args ...any) error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// AsError extracts a domain error when present.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the error kind, or an empty kind for foreign errors.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
