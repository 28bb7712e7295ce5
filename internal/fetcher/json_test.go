package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonRegion struct {
	Code       string  `json:"code"`
	Population float64 `json:"population_millions"`
}

func drainJSON[T any](ch <-chan T, errCh <-chan error) ([]T, error) {
	var out []T
	for v := range ch {
		out = append(out, v)
	}
	return out, <-errCh
}

func TestDecodeJSONArray(t *testing.T) {
	input := `[{"code":"SA-01","population_millions":8.9},{"code":"SA-07","population_millions":1.0}]`
	ch, errCh := DecodeJSONArray[jsonRegion](context.Background(), strings.NewReader(input))

	got, err := drainJSON(ch, errCh)
	require.NoError(t, err)
	assert.Equal(t, []jsonRegion{{"SA-01", 8.9}, {"SA-07", 1.0}}, got)
}

func TestDecodeJSONArray_EmptyInputs(t *testing.T) {
	for _, input := range []string{"", "[]"} {
		ch, errCh := DecodeJSONArray[jsonRegion](context.Background(), strings.NewReader(input))
		got, err := drainJSON(ch, errCh)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestDecodeJSONArray_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"object not array", `{"code":"SA-01"}`, "expected '['"},
		{"bad element", `[{"code":1}]`, "decode element"},
		{"garbage after element", `[{"code":"SA-01"} x]`, "decode element"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, errCh := DecodeJSONArray[jsonRegion](context.Background(), strings.NewReader(tt.input))
			_, err := drainJSON(ch, errCh)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeJSONArray_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch, errCh := DecodeJSONArray[jsonRegion](ctx, strings.NewReader(`[{"code":"SA-01"}]`))
	_, err := drainJSON(ch, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}
