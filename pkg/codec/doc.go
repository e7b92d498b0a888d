// Package codec encodes and decodes message payloads.
//
// Two codecs are provided: JSON for readable dumps and MessagePack for a
// compact binary form. Both round-trip any exported-field struct:
//
//	data, err := codec.Encode(codec.MessagePack, msg)
//	if err != nil {
//		return err
//	}
//	decoded, err := codec.Decode[Message](codec.MessagePack, data)
//
// The message bus never encodes payloads on its dispatch path; codecs are
// used for debugging, snapshots, and tests.
package codec
