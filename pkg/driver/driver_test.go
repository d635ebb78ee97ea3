package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEngine(t *testing.T) {
	tests := []struct {
		in      string
		want    Engine
		wantErr bool
	}{
		{in: "playwright", want: EnginePlaywright},
		{in: "chromedp", want: EngineChromedp},
		{in: "", want: EnginePlaywright},
		{in: "selenium", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseEngine(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown browser engine")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNew_UnknownEngine(t *testing.T) {
	d, err := New(context.Background(), Engine("lynx"), Options{})
	require.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), `unknown browser engine "lynx"`)
}

func TestFault(t *testing.T) {
	cause := errors.New("websocket closed")
	err := fault("click", cause)

	require.ErrorIs(t, err, ErrFault)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "click: browser driver fault: websocket closed", err.Error())
}

func TestTrimText(t *testing.T) {
	assert.Equal(t, "Log in", trimText("  Log in\n"))
	assert.Equal(t, "a b", trimText("a b"))
	assert.Empty(t, trimText("   "))
	assert.Equal(t, "Whipbird added: Mavis", trimText("Whipbird added: Mavis"))
}
