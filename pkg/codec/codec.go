package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrEmptyData is returned when decoding an empty byte slice.
var ErrEmptyData = errors.New("codec: empty data")

// Codec converts values to and from a byte representation.
type Codec interface {
	// Name identifies the wire format (e.g. "json").
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	// JSON encodes payloads with encoding/json.
	JSON Codec = jsonCodec{}

	// MessagePack encodes payloads with msgpack.
	MessagePack Codec = msgpackCodec{}
)

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return "msgpack" }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// Encode serializes value with c.
func Encode[T any](c Codec, value T) ([]byte, error) {
	data, err := c.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("codec %s: encode %T: %w", c.Name(), value, err)
	}
	return data, nil
}

// Decode deserializes data produced by Encode into a T.
func Decode[T any](c Codec, data []byte) (T, error) {
	var value T
	if len(data) == 0 {
		return value, ErrEmptyData
	}
	if err := c.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("codec %s: decode %T: %w", c.Name(), value, err)
	}
	return value, nil
}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, bool) {
	switch name {
	case JSON.Name():
		return JSON, true
	case MessagePack.Name():
		return MessagePack, true
	default:
		return nil, false
	}
}
