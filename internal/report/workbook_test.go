package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/gradebook/internal/core"
)

func sampleDataset(t *testing.T) core.Dataset {
	t.Helper()
	ds, err := core.Map(core.Parse("header\n" +
		"female,group B,bachelor's degree,standard,none,72,72,74\n" +
		"male,group A,some college,free/reduced,completed,15,x,88"))
	require.NoError(t, err)
	return ds
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleDataset(t), core.DefaultBuckets()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Students", "charms", "potions", "dark_arts"}, f.GetSheetList())

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Gender", rows[0][0])
	assert.Equal(t, []string{"Male", "A", "some college", "FreeReduced", "Completed", "15", "", "88"}, rows[2])

	rows, err = f.GetRows("charms")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Range", "Pass Rate", "Students"}, rows[0])
	assert.Equal(t, "0..20", rows[1][0])
	assert.Equal(t, "0.5", rows[1][1])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, "Potions Score", summary[2][0])
	assert.Equal(t, "1", summary[2][1])
}

func TestSaveAs_EmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, SaveAs(path, core.Dataset{}, core.DefaultBuckets()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("potions")
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}
