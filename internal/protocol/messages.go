package protocol //payloads the relay server puts on the wire
// Clients see every frame as raw text; only the relay builds these.
import (
	"encoding/json"
	"errors"
	"fmt"
)

// Button states as the BLE listener posts them. The relay passes any other
// state through untouched.
const (
	ButtonPressed  = "PRESSED"
	ButtonReleased = "RELEASED"
)

var (
	ErrMissingButton = errors.New("button is required")
	ErrMissingState  = errors.New("state is required")
)

// ButtonEvent is posted to the relay and broadcast to every client as JSON
type ButtonEvent struct {
	Button    string `json:"button"`
	State     string `json:"state"`
	Timestamp uint64 `json:"timestamp"`
}

// Validate checks the event before it is broadcast
func (e ButtonEvent) Validate() error {
	if e.Button == "" {
		return ErrMissingButton
	}
	if e.State == "" {
		return ErrMissingState
	}
	return nil
}

// EncodeButtonEvent encodes the event as a text frame payload
func EncodeButtonEvent(e ButtonEvent) ([]byte, error) {
	return json.Marshal(e)
}

// DecodeButtonEvent decodes a posted event
func DecodeButtonEvent(data []byte) (*ButtonEvent, error) {
	var e ButtonEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode button event: %w", err)
	}
	return &e, nil
}
