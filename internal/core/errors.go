package core

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional write loses to another
	// tenant, e.g. claiming an already-owned custom domain.
	ErrConflict = errors.New("conflict")
	// ErrInvalidDomain is returned for domains that fail format validation
	// or hit the blacklist.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrInvalidCallback is returned for webhook payloads carrying an
	// unknown status.
	ErrInvalidCallback = errors.New("invalid callback")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
