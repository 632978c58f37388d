package places

import (
	"fmt"
)

// Kind identifies which of the two known record shapes a Record carries.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlace
	KindText
)

func (k Kind) String() string {

	switch k {
	case KindPlace:
		return "place"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Key returns the name of the identifier column for records of kind 'k'.
func (k Kind) Key() string {

	switch k {
	case KindPlace:
		return PLACE_ID
	case KindText:
		return TEXT_ID
	default:
		return ""
	}
}

const PLACE_ID string = "fsq_id"

const TEXT_ID string = "id"

// Record is a single flattened API response item. Values returned by `Value` are always
// one of nil, string, float64 or []string.
type Record interface {
	Kind() Kind
	ID() string
	Columns() []string
	Value(string) any
}

var place_columns = []string{
	PLACE_ID,
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

var text_columns = []string{
	TEXT_ID,
	"created_at",
	"text",
}

// PlaceRecord is a venue returned by the places search endpoint.
type PlaceRecord struct {
	Id               string   `json:"fsq_id"`
	Name             string   `json:"name"`
	Address          *string  `json:"address"`
	Locality         *string  `json:"locality"`
	Country          *string  `json:"country"`
	FormattedAddress *string  `json:"formatted_address"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Distance         *float64 `json:"distance"`
	Link             string   `json:"link"`
	Categories       []string `json:"categories"`
}

func (pl *PlaceRecord) Kind() Kind {
	return KindPlace
}

func (pl *PlaceRecord) ID() string {
	return pl.Id
}

func (pl *PlaceRecord) Columns() []string {
	return place_columns
}

func (pl *PlaceRecord) Value(col string) any {

	switch col {
	case PLACE_ID:
		return pl.Id
	case "name":
		return pl.Name
	case "address":
		return derefString(pl.Address)
	case "locality":
		return derefString(pl.Locality)
	case "country":
		return derefString(pl.Country)
	case "formatted_address":
		return derefString(pl.FormattedAddress)
	case "latitude":
		return derefFloat(pl.Latitude)
	case "longitude":
		return derefFloat(pl.Longitude)
	case "distance":
		return derefFloat(pl.Distance)
	case "link":
		return pl.Link
	case "categories":

		categories := pl.Categories

		if categories == nil {
			categories = make([]string, 0)
		}

		return categories
	default:
		return nil
	}
}

func (pl *PlaceRecord) String() string {
	return fmt.Sprintf("%s %s", pl.Name, pl.Id)
}

// TextRecord is a single tip as returned by the per-place tips endpoint.
type TextRecord struct {
	Id        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Text      string `json:"text"`
}

func (t *TextRecord) Kind() Kind {
	return KindText
}

func (t *TextRecord) ID() string {
	return t.Id
}

func (t *TextRecord) Columns() []string {
	return text_columns
}

func (t *TextRecord) Value(col string) any {

	switch col {
	case TEXT_ID:
		return t.Id
	case "created_at":
		return t.CreatedAt
	case "text":
		return t.Text
	default:
		return nil
	}
}

func (t *TextRecord) String() string {
	return fmt.Sprintf("%s %s", t.Id, t.CreatedAt)
}

func derefString(s *string) any {

	if s == nil {
		return nil
	}

	return *s
}

func derefFloat(f *float64) any {

	if f == nil {
		return nil
	}

	return *f
}
