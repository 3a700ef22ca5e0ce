// Package command holds the operation units of the home: one small value
// per intent, each performing a single atomic mutation of the store.
//
// A unit never fails. An unknown id or a device of the wrong kind makes it
// a no-op, and Execute reports false. Composition (scene invalidation,
// auto-disarm, logging) is the coordinator's job, not the unit's.
package command

import (
	"github.com/nerrad567/homecore/internal/store"
)

// Unit is one executable operation.
type Unit interface {
	// Name identifies the unit in logs and metrics, e.g. "device.toggle".
	Name() string

	// Execute applies the unit to s and reports whether anything changed.
	Execute(s *store.Store) bool
}
