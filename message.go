package strata

import "reflect"

// Message is any value delivered through a machine's queue. A message needs
// no behavior of its own; its runtime type is the sole dispatch key.
type Message = any

// Key identifies a message or state by its concrete runtime type.
type Key = reflect.Type

// KeyOf returns the dispatch key for a value. A nil value yields a nil key.
func KeyOf(v any) Key {
	return reflect.TypeOf(v)
}

// For returns the dispatch key for a type without needing a value of it.
func For[T any]() Key {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// asKey normalizes a target given either as a Key or as a value whose type
// should be used.
func asKey(v any) Key {
	if v == nil {
		return nil
	}
	if k, ok := v.(Key); ok {
		return k
	}
	return KeyOf(v)
}

// keyName returns the bare type name used in logs and in noisy-message
// classification. Pointer types report their element name, so *Idle and
// Idle classify the same.
func keyName(k Key) string {
	if k == nil {
		return "<nil>"
	}
	for k.Kind() == reflect.Pointer {
		k = k.Elem()
	}
	if name := k.Name(); name != "" {
		return name
	}
	return k.String()
}
