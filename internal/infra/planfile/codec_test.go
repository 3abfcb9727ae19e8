package planfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/domain"
)

func TestCodec_Decode(t *testing.T) {
	input := `
- title: Prepare release
  priority: high
  start: 2024-06-03
  end: 2024-06-05
  description: cut the branch
- title: Retro
  start: "2024-06-07"
  end: "2024-06-07"
`
	got, err := New().Decode(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []domain.NewTaskInput{
		{Title: "Prepare release", Priority: "high", StartDate: "2024-06-03", EndDate: "2024-06-05", Description: "cut the branch"},
		{Title: "Retro", StartDate: "2024-06-07", EndDate: "2024-06-07"},
	}, got)
}

func TestCodec_Decode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty document", "", domain.ErrEmptyPlan},
		{"empty list", "[]\n", domain.ErrEmptyPlan},
		{"unknown key", "- title: x\n  due: 2024-06-03\n", nil},
		{"not a list", "title: x\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCodec_EncodeDecode(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Title: "Write docs", Priority: domain.PriorityLow, StartDate: "2024-06-03", EndDate: "2024-06-04"},
		{ID: "b", Title: "Ship", Priority: domain.PriorityHigh, StartDate: "2024-06-05", EndDate: "2024-06-05", Description: "v1.2"},
	}

	var buf bytes.Buffer
	require.NoError(t, New().Encode(&buf, tasks))

	out := buf.String()
	assert.Contains(t, out, "- title: Write docs")
	assert.Contains(t, out, "description: v1.2")
	assert.NotContains(t, out, "id:")

	got, err := New().Decode(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Write docs", got[0].Title)
	assert.Equal(t, "low", got[0].Priority)
	assert.Equal(t, "2024-06-04", got[0].EndDate)
	assert.Equal(t, "v1.2", got[1].Description)
}
