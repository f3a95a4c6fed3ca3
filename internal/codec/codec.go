// Package codec shapes search responses for transport.
//
// The obfuscating codec only keeps payloads from being readable at a glance.
// It provides no confidentiality and no integrity: anyone holding the filler
// position can decode it, and nothing detects tampering. Do not use it as
// encryption or as an authorization mechanism.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	DefaultFillerPosition = 7
	DefaultFiller         = 'x'
)

var ErrMalformed = errors.New("malformed payload")

type Codec interface {
	Encode(v any) (string, error)
	Decode(s string, v any) error
}

// Obfuscator serializes to JSON, base64-encodes it and inserts one filler
// character at a fixed position. The position is clamped to the encoded length.
type Obfuscator struct {
	Position int
	Filler   byte
}

func NewObfuscator() *Obfuscator {
	return &Obfuscator{Position: DefaultFillerPosition, Filler: DefaultFiller}
}

func (o *Obfuscator) Encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	p := min(o.Position, len(encoded))

	out := make([]byte, 0, len(encoded)+1)
	out = append(out, encoded[:p]...)
	out = append(out, o.Filler)
	out = append(out, encoded[p:]...)
	return string(out), nil
}

func (o *Obfuscator) Decode(s string, v any) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrMalformed)
	}
	p := min(o.Position, len(s)-1)

	raw, err := base64.StdEncoding.DecodeString(s[:p] + s[p+1:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Plain is the identity transform over JSON, used for raw responses.
type Plain struct{}

func (Plain) Encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	return string(raw), nil
}

func (Plain) Decode(s string, v any) error {
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Envelope is the non-raw wire body: {"data": "<encoded>"}.
type Envelope struct {
	Data string `json:"data"`
}
