package entt

import (
	"fmt"
	"reflect"
)

// DuplicateValueError is returned by Emplace/PolyStorage.Emplace when the
// entity already owns a value of the exact requested type. The existing
// value is left untouched (spec §7).
type DuplicateValueError struct {
	Type   reflect.Type
	Entity Entity
}

func (err *DuplicateValueError) Error() string {
	return fmt.Sprintf("entt: entity %d (v%d) already has a value of type %s", err.Entity.ID, err.Entity.Version, err.Type)
}
