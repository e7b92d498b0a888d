package bus

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Envelope carries one payload and its type tag through dispatch.
// It is immutable; the same Envelope may be handed to many handlers.
type Envelope struct {
	id          string
	payload     any
	payloadType string
	createdAt   time.Time
}

// NewEnvelope wraps payload with a fresh ID and timestamp.
// The type tag is derived from the payload's dynamic type.
func NewEnvelope(payload any) Envelope {
	return Envelope{
		id:          uuid.NewString(),
		payload:     payload,
		payloadType: TypeName(payload),
		createdAt:   time.Now(),
	}
}

// ID returns the unique envelope identifier.
func (e Envelope) ID() string { return e.id }

// Payload returns the wrapped value.
func (e Envelope) Payload() any { return e.payload }

// Type returns the payload type tag, e.g. "PlayerMoved".
func (e Envelope) Type() string { return e.payloadType }

// CreatedAt returns when the envelope was built.
func (e Envelope) CreatedAt() time.Time { return e.createdAt }

// As returns the payload as a T if the payload holds one.
// Handlers interested in a single payload type use it to skip everything else.
func As[T any](e Envelope) (T, bool) {
	v, ok := e.payload.(T)
	return v, ok
}

// TypeName returns the type tag used for v: the bare type name with pointers
// unwrapped ("PlayerMoved" for both PlayerMoved and *PlayerMoved). Unnamed
// types use their literal form ("[]int"), and nil yields "nil".
//
// Package paths are dropped, so two packages' types with the same name share
// a tag. Tags are informational; As matches on the real type.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
