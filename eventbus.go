package entt

import "reflect"

// LifecycleBus dispatches typed notifications about a Registry's component
// lifecycle — a value coming into existence, a value going out of existence
// — to whatever code registered interest, without storage.go needing to
// know whether anyone is listening. Every event flowing through this bus is
// a generic wrapper parameterized over some component type T
// (ValueConstructedEvent[T], ValueDestroyedEvent[T]), so the set of distinct
// event types in play tracks the number of registered component types in
// the running program, not a fixed handful of application-defined structs
// known up front. A plain map keyed by reflect.Type, grown lazily as new
// T's are subscribed to or published, fits that open-ended shape; there is
// no benefit here to pre-assigning small integer IDs into a capped array,
// since nothing in this module ever iterates "all event types" or needs
// dense indices for anything but the map lookup itself.
type LifecycleBus struct {
	handlers map[reflect.Type][]any
}

// Subscribe registers handler to be called, in registration order, every
// time an event of type T is published on bus.
func Subscribe[T any](bus *LifecycleBus, handler func(T)) {
	if bus.handlers == nil {
		bus.handlers = make(map[reflect.Type][]any)
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish calls every handler subscribed to T, synchronously and in
// subscription order. A T with no subscribers is a no-op map lookup.
func Publish[T any](bus *LifecycleBus, event T) {
	for _, h := range bus.handlers[reflect.TypeOf((*T)(nil)).Elem()] {
		h.(func(T))(event)
	}
}
