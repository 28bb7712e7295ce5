package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectRows(t *testing.T, rowCh <-chan []string, errCh <-chan error) ([][]string, error) {
	t.Helper()
	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	for err := range errCh {
		if err != nil {
			return rows, err
		}
	}
	return rows, nil
}

func TestStreamCSV_Basic(t *testing.T) {
	input := "SA-01,Riyadh,8.9\nSA-02,Makkah,9.1\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{})

	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"SA-01", "Riyadh", "8.9"}, rows[0])
}

func TestStreamCSV_WithHeader(t *testing.T) {
	input := "code,name\nSA-01,Riyadh\nSA-04,Eastern Province\n"
	headerCh := make(chan []string, 1)
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		HasHeader: true,
		HeaderCh:  headerCh,
	})

	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "name"}, <-headerCh)
	require.Len(t, rows, 2)
	assert.Equal(t, "Eastern Province", rows[1][1])
}

func TestStreamCSV_HeaderWithoutChannel(t *testing.T) {
	input := "code\nSA-01\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{HasHeader: true})

	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"SA-01"}}, rows)
}

func TestStreamCSV_Options(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  CSVOptions
		want  [][]string
	}{
		{"semicolon", "SA-01;Riyadh\n", CSVOptions{Delimiter: ';'}, [][]string{{"SA-01", "Riyadh"}}},
		{"trim", " SA-01 ,  Riyadh \n", CSVOptions{TrimSpace: true}, [][]string{{"SA-01", "Riyadh"}}},
		{"comment", "# source: GASTAT\nSA-01,Riyadh\n", CSVOptions{Comment: '#'}, [][]string{{"SA-01", "Riyadh"}}},
		{"ragged", "a,b,c\nd\n", CSVOptions{}, [][]string{{"a", "b", "c"}, {"d"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(tt.input), tt.opts)
			rows, err := collectRows(t, rowCh, errCh)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestStreamCSV_Empty(t *testing.T) {
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(""), CSVOptions{})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStreamCSV_MalformedQuote(t *testing.T) {
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader("a,\"b\nc"), CSVOptions{})
	_, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: read row")
}

func TestStreamCSV_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rowCh, errCh := StreamCSV(ctx, strings.NewReader("a,b\n"), CSVOptions{})
	_, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}

func TestStreamCSV_ContextCancelledMidStream(t *testing.T) {
	var sb strings.Builder
	for range 1000 {
		sb.WriteString("SA-01,Riyadh\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	rowCh, errCh := StreamCSV(ctx, strings.NewReader(sb.String()), CSVOptions{})

	<-rowCh
	cancel()
	for range rowCh {
	}
	err := <-errCh
	require.Error(t, err)
}
