package table

import (
	"testing"

	"github.com/Alberto-Martinelli/webscraping-project"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func place(id string, name string, country *string) *places.PlaceRecord {

	return &places.PlaceRecord{
		Id:         id,
		Name:       name,
		Country:    country,
		Link:       "/v3/places/" + id,
		Categories: []string{"Hotel"},
	}
}

func TestAssemble(t *testing.T) {

	fr := "FR"

	records := []places.Record{
		place("A1", "Hotel X", &fr),
		place("A2", "Hotel Y", nil),
	}

	tb, err := Assemble(records)
	require.NoError(t, err)

	expected_columns := []string{
		"fsq_id",
		"name",
		"address",
		"locality",
		"country",
		"formatted_address",
		"latitude",
		"longitude",
		"distance",
		"link",
		"categories",
	}

	if diff := cmp.Diff(expected_columns, tb.Columns()); diff != "" {
		t.Fatalf("Unexpected columns (-want +got):\n%s", diff)
	}

	require.Equal(t, places.PLACE_ID, tb.Key())
	require.Equal(t, 2, tb.Len())

	require.Equal(t, "FR", tb.Row(0)["country"])
	require.Nil(t, tb.Row(1)["country"])
	require.Equal(t, []string{"Hotel"}, tb.Row(1)["categories"])

	require.Equal(t, []string{"A1", "A2"}, tb.IDs())
	require.Empty(t, tb.Duplicates())
}

func TestAssembleEmpty(t *testing.T) {

	tb, err := Assemble(nil)
	require.NoError(t, err)

	require.Equal(t, 0, tb.Len())
	require.Empty(t, tb.Columns())
}

func TestAssembleMixed(t *testing.T) {

	records := []places.Record{
		place("A1", "Hotel X", nil),
		&places.TextRecord{Id: "t1", CreatedAt: "2024-01-01", Text: "Great stay"},
	}

	_, err := Assemble(records)
	require.ErrorIs(t, err, ErrMixedRecords)
}

func TestDuplicates(t *testing.T) {

	records := []places.Record{
		place("A1", "Hotel X", nil),
		place("A2", "Hotel Y", nil),
		place("A1", "Hotel X", nil),
	}

	tb, err := Assemble(records)
	require.NoError(t, err)

	require.Equal(t, 3, tb.Len())
	require.Equal(t, []string{"A1", "A2"}, tb.IDs())
	require.Equal(t, []string{"A1"}, tb.Duplicates())

	count := tb.Set("tips", "A1", "Great stay")
	require.Equal(t, 2, count)

	require.Equal(t, "Great stay", tb.Row(0)["tips"])
	require.Nil(t, tb.Row(1)["tips"])
	require.Equal(t, "Great stay", tb.Row(2)["tips"])
}

func TestAddColumnSet(t *testing.T) {

	tb := New("id")
	tb.Append(Row{"id": "t1", "text": "Great stay"})

	tb.AddColumn("extra")
	tb.AddColumn("extra")

	require.Equal(t, []string{"id", "text", "extra"}, tb.Columns())

	_, exists := tb.Row(0)["extra"]
	require.True(t, exists)
	require.Nil(t, tb.Row(0)["extra"])

	for i := 0; i < 2; i++ {
		require.Equal(t, 1, tb.Set("extra", "t1", "value"))
	}

	require.Equal(t, "value", tb.Row(0)["extra"])
	require.Equal(t, 0, tb.Set("extra", "missing", "value"))

	tb.Append(Row{"id": "t2"})
	require.Nil(t, tb.Row(1)["text"])
	require.Nil(t, tb.Row(1)["extra"])
}

func TestColumnsIsCopy(t *testing.T) {

	tb := New("id", "text")

	cols := tb.Columns()
	cols[0] = "changed"

	require.Equal(t, []string{"id", "text"}, tb.Columns())
}

func TestStrings(t *testing.T) {

	lat := 40.7128

	records := []places.Record{
		&places.PlaceRecord{
			Id:         "A1",
			Name:       "Hotel X",
			Latitude:   &lat,
			Link:       "http://x",
			Categories: []string{"Hotel", "Bar"},
		},
	}

	tb, err := Assemble(records)
	require.NoError(t, err)

	row := tb.Strings(0)

	require.Equal(t, "A1", row["fsq_id"])
	require.Equal(t, "40.7128", row["latitude"])
	require.Equal(t, "", row["longitude"])
	require.Equal(t, `["Hotel","Bar"]`, row["categories"])
	require.Len(t, row, len(tb.Columns()))
}

func TestFormat(t *testing.T) {

	tests := map[string]any{
		"":      nil,
		"hello": "hello",
		"1.5":   1.5,
		"120":   120.0,
		"42":    int64(42),
		"7":     7,
		"[]":    []string{},
		`["a"]`: []string{"a"},
		"true":  true,
	}

	for expected, v := range tests {
		require.Equal(t, expected, Format(v))
	}
}
