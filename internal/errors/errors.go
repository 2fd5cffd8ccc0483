// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package errors re-exports github.com/cockroachdb/errors so skyquery code
// gets stack traces, wrapping and user hints from one import.
//
//	if err := db.Ping(); err != nil {
//	    return errors.Wrap(err, "opening catalog")
//	}
//	return errors.WithHint(err, "supply ra and dec for a custom body")
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping.
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing hints and details.
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Inspection.
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
	Mark      = crdb.Mark
)

// Sentinels shared across packages.
var (
	// ErrInvalidInput marks input rejected before any work is done.
	ErrInvalidInput = New("invalid input")

	// ErrNotFound marks a lookup that found nothing.
	ErrNotFound = New("not found")
)
