package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/profile"
)

func testLayout(t *testing.T) *grid.Layout {
	t.Helper()
	l, err := grid.NewLayout(grid.ColumnSpec{Columns: []grid.Column{
		{ID: "fullName"}, {ID: "skills"}, {ID: "yearsExperience"},
	}})
	require.NoError(t, err)
	return l
}

func testDataset() *profile.Dataset {
	return profile.NewDataset([]profile.Record{
		{"fullName": "Ada Lovelace", "skills": []any{"math", "engines"}, "yearsExperience": 12},
		{"fullName": "Grace Hopper", "skills": []string{"cobol"}},
		{"fullName": "Alan, Turing"},
	})
}

func TestWriteCSV_AllRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testDataset(), testLayout(t), nil))

	want := "Full Name,Skills,Years Experience\n" +
		"Ada Lovelace,math; engines,12\n" +
		"Grace Hopper,cobol,\n" +
		"\"Alan, Turing\",,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_SelectedRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testDataset(), testLayout(t), []int{1}))
	assert.Equal(t, "Full Name,Skills,Years Experience\nGrace Hopper,cobol,\n", buf.String())
}

func TestWriteCSV_RowOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, testDataset(), testLayout(t), []int{7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 7")
}

func TestSelectedRows(t *testing.T) {
	assert.Nil(t, SelectedRows(nil))

	sel := grid.NewSelectionStore()
	assert.Nil(t, SelectedRows(sel))

	sel.Toggle(grid.CellKey{Row: 2, Col: 0})
	sel.Toggle(grid.CellKey{Row: 0, Col: 1})
	sel.Toggle(grid.CellKey{Row: 2, Col: 2})
	assert.Equal(t, []int{0, 2}, SelectedRows(sel))
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "profiles-20240309-140507.csv", FileName(at))
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	path, err := ToFile(dir, testDataset(), testLayout(t), []int{0}, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "profiles-20240309-140507.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Full Name,Skills,Years Experience\nAda Lovelace,math; engines,12\n", string(data))

	// same timestamp must not overwrite
	_, err = ToFile(dir, testDataset(), testLayout(t), nil, at)
	require.Error(t, err)
}

func TestToFile_EmptyDataset(t *testing.T) {
	_, err := ToFile(t.TempDir(), profile.NewDataset(nil), testLayout(t), nil, time.Now())
	require.ErrorIs(t, err, ErrNoRows)
}
