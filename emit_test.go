package places

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNormalizePlace(t *testing.T) {

	ctx := context.Background()

	body := []byte(`{"results": [{"fsq_id": "A1", "name": "Hotel X", "location": {}, "categories": [{"name":"Lodging"}], "link": "http://x"}]}`)

	b, err := Normalize(ctx, body)
	require.NoError(t, err)

	require.Equal(t, KindPlace, b.Kind)
	require.Len(t, b.Records, 1)
	require.Empty(t, b.Rejected)

	r := b.Records[0]

	require.Equal(t, "A1", r.ID())
	require.Equal(t, "Hotel X", r.Value("name"))
	require.Nil(t, r.Value("address"))
	require.Equal(t, "http://x", r.Value("link"))

	if diff := cmp.Diff([]string{"Lodging"}, r.Value("categories")); diff != "" {
		t.Fatalf("Unexpected categories (-want +got):\n%s", diff)
	}
}

func TestNormalizeFullPlace(t *testing.T) {

	ctx := context.Background()

	body := []byte(`[{
		"fsq_id": "B2",
		"name": "Hotel Y",
		"location": {"address": "1 Main St", "locality": "Paris", "country": "FR", "formatted_address": "1 Main St, Paris"},
		"geocodes": {"main": {"latitude": 48.85, "longitude": 2.35}},
		"distance": 120,
		"link": "/v3/places/B2",
		"categories": [{"name": "Hotel"}, {"name": "Bar"}, {"name": "Restaurant"}]
	}]`)

	b, err := Normalize(ctx, body)
	require.NoError(t, err)
	require.Len(t, b.Records, 1)

	pl, ok := b.Records[0].(*PlaceRecord)
	require.True(t, ok)

	address := "1 Main St"
	locality := "Paris"
	country := "FR"
	formatted := "1 Main St, Paris"
	lat := 48.85
	lon := 2.35
	distance := 120.0

	expected := &PlaceRecord{
		Id:               "B2",
		Name:             "Hotel Y",
		Address:          &address,
		Locality:         &locality,
		Country:          &country,
		FormattedAddress: &formatted,
		Latitude:         &lat,
		Longitude:        &lon,
		Distance:         &distance,
		Link:             "/v3/places/B2",
		Categories:       []string{"Hotel", "Bar", "Restaurant"},
	}

	if diff := cmp.Diff(expected, pl); diff != "" {
		t.Fatalf("Unexpected place (-want +got):\n%s", diff)
	}
}

func TestNormalizeMissingLocation(t *testing.T) {

	ctx := context.Background()

	body := []byte(`{"results": [{"fsq_id": "C3", "name": "Nowhere", "link": "http://c"}]}`)

	b, err := Normalize(ctx, body)
	require.NoError(t, err)
	require.Len(t, b.Records, 1)

	r := b.Records[0]

	for _, col := range []string{"address", "locality", "country", "formatted_address", "latitude", "longitude", "distance"} {
		require.Nil(t, r.Value(col), col)
	}

	require.Equal(t, []string{}, r.Value("categories"))
	require.Equal(t, place_columns, r.Columns())
}

func TestNormalizeEmpty(t *testing.T) {

	ctx := context.Background()

	inputs := []string{
		``,
		`   `,
		`null`,
		`[]`,
		`{}`,
		`{"results": []}`,
		`{"results": null}`,
	}

	for _, str_body := range inputs {

		b, err := Normalize(ctx, []byte(str_body))
		require.NoError(t, err, str_body)

		require.True(t, b.Empty(), str_body)
		require.Equal(t, KindUnknown, b.Kind, str_body)
	}
}

func TestNormalizeInvalidPayload(t *testing.T) {

	ctx := context.Background()

	_, err := Normalize(ctx, []byte(`{"results": `))
	require.ErrorIs(t, err, ErrInvalidJSON)

	_, err = Normalize(ctx, []byte(`{"message": "Unauthorized"}`))
	require.ErrorIs(t, err, ErrUnexpectedPayload)

	_, err = Normalize(ctx, []byte(`{"results": "nope"}`))
	require.ErrorIs(t, err, ErrUnexpectedPayload)

	_, err = Normalize(ctx, []byte(`42`))
	require.ErrorIs(t, err, ErrUnexpectedPayload)
}

func TestNormalizeUnknownShape(t *testing.T) {

	ctx := context.Background()

	body := []byte(`[
		{"fsq_id": "A1", "name": "Hotel X", "link": "http://x"},
		{"foo": "bar"},
		"a string",
		{"fsq_id": "A2", "name": "Hotel Z", "link": "http://z"}
	]`)

	b, err := Normalize(ctx, body)
	require.NoError(t, err)

	require.Len(t, b.Records, 2)
	require.Equal(t, "A1", b.Records[0].ID())
	require.Equal(t, "A2", b.Records[1].ID())

	require.Len(t, b.Rejected, 2)
	require.Equal(t, 1, b.Rejected[0].Index)
	require.ErrorIs(t, b.Rejected[0], ErrUnknownShape)
	require.Equal(t, 2, b.Rejected[1].Index)
}

func TestNormalizeMissingField(t *testing.T) {

	ctx := context.Background()

	body := []byte(`[
		{"fsq_id": "A1", "link": "http://x"},
		{"fsq_id": "A2", "name": "Hotel Z", "link": "http://z", "categories": [{"id": 1}]},
		{"fsq_id": "", "name": "Hotel Q", "link": "http://q"}
	]`)

	b, err := Normalize(ctx, body)
	require.NoError(t, err)

	require.Empty(t, b.Records)
	require.Len(t, b.Rejected, 3)

	require.ErrorIs(t, b.Rejected[0], ErrMissingField)
	require.Equal(t, "name", b.Rejected[0].Field)

	require.Equal(t, "categories.name", b.Rejected[1].Field)
	require.Equal(t, PLACE_ID, b.Rejected[2].Field)
}

func TestNormalizeMixedShape(t *testing.T) {

	ctx := context.Background()

	body := []byte(`[
		{"id": "t1", "created_at": "2024-01-01T00:00:00.000Z", "text": "Great stay"},
		{"fsq_id": "A1", "name": "Hotel X", "link": "http://x"},
		{"id": "t2", "created_at": "2024-01-02T00:00:00.000Z", "text": "Clean room"}
	]`)

	b, err := Normalize(ctx, body)
	require.NoError(t, err)

	require.Equal(t, KindText, b.Kind)
	require.Len(t, b.Records, 2)

	require.Len(t, b.Rejected, 1)
	require.ErrorIs(t, b.Rejected[0], ErrMixedShape)
	require.Equal(t, PLACE_ID, b.Rejected[0].Field)
}

func TestNormalizeText(t *testing.T) {

	ctx := context.Background()

	body := []byte(`[{"id": "t1", "created_at": "2024-01-01T00:00:00.000Z", "text": "Great stay"}]`)

	b, err := Normalize(ctx, body)
	require.NoError(t, err)
	require.Len(t, b.Records, 1)

	expected := &TextRecord{
		Id:        "t1",
		CreatedAt: "2024-01-01T00:00:00.000Z",
		Text:      "Great stay",
	}

	if diff := cmp.Diff(expected, b.Records[0]); diff != "" {
		t.Fatalf("Unexpected text (-want +got):\n%s", diff)
	}

	require.Equal(t, TEXT_ID, b.Kind.Key())
}

func TestEmitStopsEarly(t *testing.T) {

	ctx := context.Background()

	body := []byte(`[
		{"fsq_id": "A1", "name": "Hotel X", "link": "http://x"},
		{"fsq_id": "A2", "name": "Hotel Z", "link": "http://z"}
	]`)

	count := 0

	for r, err := range Emit(ctx, body) {
		require.NoError(t, err)
		require.Equal(t, "A1", r.ID())
		count += 1
		break
	}

	require.Equal(t, 1, count)
}

func TestEmitCancelled(t *testing.T) {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := []byte(`[{"fsq_id": "A1", "name": "Hotel X", "link": "http://x"}]`)

	for _, err := range Emit(ctx, body) {
		require.True(t, errors.Is(err, context.Canceled))
	}
}
