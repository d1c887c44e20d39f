package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		event   ButtonEvent
		wantErr error
	}{
		{"pressed", ButtonEvent{Button: "A", State: ButtonPressed}, nil},
		{"released", ButtonEvent{Button: "B", State: ButtonReleased, Timestamp: 10}, nil},
		{"missing button", ButtonEvent{State: ButtonPressed}, ErrMissingButton},
		{"lowercase state", ButtonEvent{Button: "A", State: "pressed"}, nil},
		{"unknown state passes through", ButtonEvent{Button: "A", State: "held"}, nil},
		{"missing state", ButtonEvent{Button: "A"}, ErrMissingState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncodeButtonEvent(t *testing.T) {
	data, err := EncodeButtonEvent(ButtonEvent{Button: "A", State: ButtonPressed, Timestamp: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"button":"A","state":"PRESSED","timestamp":42}`, string(data))
}

func TestDecodeButtonEvent(t *testing.T) {
	e, err := DecodeButtonEvent([]byte(`{"button":"B","state":"RELEASED","timestamp":7}`))
	require.NoError(t, err)
	assert.Equal(t, &ButtonEvent{Button: "B", State: ButtonReleased, Timestamp: 7}, e)

	_, err = DecodeButtonEvent([]byte(`{not json`))
	assert.Error(t, err)
}
