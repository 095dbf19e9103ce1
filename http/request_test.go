package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat(t *testing.T) {
	for raw, want := range map[string]float64{
		`12.5`:    12.5,
		`"12.5"`:  12.5,
		`" 7 "`:   7,
		`0`:       0,
		`"-3e2"`:  -300,
		`1000000`: 1000000,
	} {
		var f flexFloat
		require.NoError(t, json.Unmarshal([]byte(raw), &f), raw)
		assert.Equal(t, want, float64(f), raw)
	}

	for _, raw := range []string{`"abc"`, `""`, `true`, `"NaN"`, `"Inf"`} {
		var f flexFloat
		assert.Error(t, json.Unmarshal([]byte(raw), &f), raw)
	}
}

func TestFlexInt(t *testing.T) {
	for raw, want := range map[string]int{
		`12`:   12,
		`"12"`: 12,
		`12.0`: 12,
	} {
		var n flexInt
		require.NoError(t, json.Unmarshal([]byte(raw), &n), raw)
		assert.Equal(t, want, int(n), raw)
	}

	for _, raw := range []string{`12.5`, `"twelve"`, `1e12`} {
		var n flexInt
		assert.Error(t, json.Unmarshal([]byte(raw), &n), raw)
	}
}
