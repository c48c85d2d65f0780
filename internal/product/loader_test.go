package product

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadEntries(t *testing.T) {
	input := "Days Since,strain,Brand,grams\n" +
		"Harvested 5 days ago,Blue Dream,Meds Cafe,3.5g\n" +
		",,,\n" +
		"Harvested 3 days ago,OG Kush,Meds Cafe,7g\n"

	entries, err := ReadEntries(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Strain: "Blue Dream", Brand: "Meds Cafe", Grams: "3.5g", DaysSince: "Harvested 5 days ago"},
		{Strain: "OG Kush", Brand: "Meds Cafe", Grams: "7g", DaysSince: "Harvested 3 days ago"},
	}, entries)
}

func TestReadEntries_ShortRows(t *testing.T) {
	entries, err := ReadEntries(strings.NewReader("strain,brand,grams,days_since\nGelato\n"))
	require.NoError(t, err)
	require.Equal(t, []Entry{{Strain: "Gelato"}}, entries)
}

func TestReadEntries_MissingStrainColumn(t *testing.T) {
	_, err := ReadEntries(strings.NewReader("brand,grams\nMeds Cafe,3.5g\n"))
	require.Error(t, err)
}

func TestReadEntries_Empty(t *testing.T) {
	_, err := ReadEntries(strings.NewReader(""))
	require.Error(t, err)
}

func TestLoadEntriesFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("strain,brand,grams,days_since\nBlue Dream,Meds Cafe,3.5g,Harvested 5 days ago\n"), 0o644))

	entries, err := LoadEntriesFromCSV(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Blue Dream", entries[0].Strain)

	_, err = LoadEntriesFromCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestEntryLines(t *testing.T) {
	e := Entry{Strain: "Blue Dream", Brand: "Meds Cafe", Grams: "3.5g", DaysSince: "Harvested 5 days ago"}
	require.Equal(t, []string{"Blue Dream", "Brand: Meds Cafe", "3.5g", "Harvested 5 days ago"}, e.Lines())
}
