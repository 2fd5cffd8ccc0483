// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compute

import (
	"fmt"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/pkg/types"
)

// ErrBackendUnavailable is returned by a backend that cannot be reached. The
// facade treats it like any other native failure and falls back.
var ErrBackendUnavailable = errors.New("computation backend unavailable")

// UnsupportedBodyError reports a body a backend cannot compute. When the
// fallback returns it the facade passes it to the caller unchanged.
type UnsupportedBodyError struct {
	Body    types.Body
	Backend types.BackendKind
}

func (e *UnsupportedBodyError) Error() string {
	return fmt.Sprintf("unsupported body: %s", e.Body)
}

// IsUnsupportedBody reports whether err carries an UnsupportedBodyError.
func IsUnsupportedBody(err error) bool {
	var ub *UnsupportedBodyError
	return errors.As(err, &ub)
}

// ValidationError is a request that violates the operation's contract.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, errors.ErrInvalidInput) match validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == errors.ErrInvalidInput
}

func invalid(field, reason, hint string) error {
	err := error(&ValidationError{Field: field, Reason: reason})
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return err
}
