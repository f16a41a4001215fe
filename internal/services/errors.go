// Package services defines the business logic for clients and tickets.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrClientNotFound indicates that the referenced client does not exist,
	// e.g. when creating a ticket for an unknown client_id.
	ErrClientNotFound = errors.New("client not found")

	// ErrTicketNotFound indicates that the requested ticket does not exist.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrEmptyName is returned when a request to create a client carries an
	// empty (or whitespace-only) name.
	ErrEmptyName = errors.New("client name is empty")

	// ErrEmptyType is returned when a request to create a ticket carries an
	// empty (or whitespace-only) type.
	ErrEmptyType = errors.New("ticket type is empty")

	// ErrInvalidStatus is returned when a status value is outside the
	// allowed set (new, in_progress, waiting, closed).
	ErrInvalidStatus = errors.New("invalid ticket status")
)
