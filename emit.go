package places

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/tidwall/gjson"
)

var ErrUnknownShape = errors.New("item matches neither the place nor the text shape")

var ErrMixedShape = errors.New("item shape differs from the rest of the batch")

var ErrMissingField = errors.New("missing required field")

var ErrUnexpectedPayload = errors.New("payload is neither a list nor an object with a results list")

var ErrInvalidJSON = errors.New("invalid JSON")

// ShapeError reports a single payload item that could not be normalized. It is yielded
// in place of the record and does not stop iteration.
type ShapeError struct {
	Index int
	Field string
	Err   error
}

func (e *ShapeError) Error() string {

	if e.Field != "" {
		return fmt.Sprintf("item %d: %v (%s)", e.Index, e.Err, e.Field)
	}

	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// Batch is the result of normalizing one payload. Records are all of the same Kind.
type Batch struct {
	Kind     Kind
	Records  []Record
	Rejected []*ShapeError
}

// Empty reports whether the batch produced neither records nor rejections.
func (b *Batch) Empty() bool {
	return len(b.Records) == 0 && len(b.Rejected) == 0
}

// Items returns the list of items in 'body', descending into "results" when the payload
// is an object. An empty or absent payload yields an empty list and no error.
func Items(body []byte) ([]gjson.Result, error) {

	body = bytes.TrimSpace(body)

	if len(body) == 0 {
		return nil, nil
	}

	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(body)

	switch {
	case root.Type == gjson.Null:
		return nil, nil
	case root.IsArray():
		return root.Array(), nil
	case root.IsObject():

		results := root.Get("results")

		if !results.Exists() {

			if len(root.Map()) == 0 {
				return nil, nil
			}

			return nil, ErrUnexpectedPayload
		}

		if results.Type == gjson.Null {
			return nil, nil
		}

		if !results.IsArray() {
			return nil, fmt.Errorf("%w: results is not a list", ErrUnexpectedPayload)
		}

		return results.Array(), nil
	default:
		return nil, ErrUnexpectedPayload
	}
}

// Emit yields the records in 'body' in source order. Items that can not be normalized
// yield a *ShapeError and iteration continues. Payload level failures yield a single
// error and stop.
func Emit(ctx context.Context, body []byte) iter.Seq2[Record, error] {

	return func(yield func(Record, error) bool) {

		items, err := Items(body)

		if err != nil {
			yield(nil, err)
			return
		}

		batch_kind := KindUnknown

		for idx, item := range items {

			if ctx.Err() != nil {
				yield(nil, ctx.Err())
				return
			}

			r, err := deriveRecord(idx, item)

			if err == nil {

				if batch_kind == KindUnknown {
					batch_kind = r.Kind()
				} else if r.Kind() != batch_kind {
					r = nil
					err = &ShapeError{Index: idx, Field: shapeKey(item), Err: ErrMixedShape}
				}
			}

			if !yield(r, err) {
				return
			}
		}
	}
}

// Normalize collects every record in 'body' in to a Batch. The returned error is non-nil
// only for payload level failures; per-item failures are listed in Batch.Rejected.
func Normalize(ctx context.Context, body []byte) (*Batch, error) {

	b := &Batch{
		Records:  make([]Record, 0),
		Rejected: make([]*ShapeError, 0),
	}

	for r, err := range Emit(ctx, body) {

		if err != nil {

			var shape_err *ShapeError

			if !errors.As(err, &shape_err) {
				return nil, err
			}

			b.Rejected = append(b.Rejected, shape_err)
			continue
		}

		if b.Kind == KindUnknown {
			b.Kind = r.Kind()
		}

		b.Records = append(b.Records, r)
	}

	return b, nil
}

func shapeKey(item gjson.Result) string {

	switch {
	case item.Get(PLACE_ID).Exists():
		return PLACE_ID
	case item.Get(TEXT_ID).Exists():
		return TEXT_ID
	default:
		return ""
	}
}

func deriveRecord(idx int, item gjson.Result) (Record, error) {

	if !item.IsObject() {
		return nil, &ShapeError{Index: idx, Err: ErrUnknownShape}
	}

	switch shapeKey(item) {
	case PLACE_ID:

		pl, err := derivePlace(idx, item)

		if err != nil {
			return nil, err
		}

		return pl, nil

	case TEXT_ID:

		t, err := deriveText(idx, item)

		if err != nil {
			return nil, err
		}

		return t, nil

	default:
		return nil, &ShapeError{Index: idx, Err: ErrUnknownShape}
	}
}

func derivePlace(idx int, item gjson.Result) (*PlaceRecord, error) {

	id, err := requiredString(idx, item, PLACE_ID)

	if err != nil {
		return nil, err
	}

	if id == "" {
		return nil, &ShapeError{Index: idx, Field: PLACE_ID, Err: ErrMissingField}
	}

	name, err := requiredString(idx, item, "name")

	if err != nil {
		return nil, err
	}

	link, err := requiredString(idx, item, "link")

	if err != nil {
		return nil, err
	}

	categories := make([]string, 0)

	for _, c := range item.Get("categories").Array() {

		c_name := c.Get("name")

		if !c_name.Exists() {
			return nil, &ShapeError{Index: idx, Field: "categories.name", Err: ErrMissingField}
		}

		categories = append(categories, c_name.String())
	}

	pl := &PlaceRecord{
		Id:               id,
		Name:             name,
		Address:          optionalString(item, "location.address"),
		Locality:         optionalString(item, "location.locality"),
		Country:          optionalString(item, "location.country"),
		FormattedAddress: optionalString(item, "location.formatted_address"),
		Latitude:         optionalFloat(item, "geocodes.main.latitude"),
		Longitude:        optionalFloat(item, "geocodes.main.longitude"),
		Distance:         optionalFloat(item, "distance"),
		Link:             link,
		Categories:       categories,
	}

	return pl, nil
}

func deriveText(idx int, item gjson.Result) (*TextRecord, error) {

	id, err := requiredString(idx, item, TEXT_ID)

	if err != nil {
		return nil, err
	}

	created, err := requiredString(idx, item, "created_at")

	if err != nil {
		return nil, err
	}

	text, err := requiredString(idx, item, "text")

	if err != nil {
		return nil, err
	}

	t := &TextRecord{
		Id:        id,
		CreatedAt: created,
		Text:      text,
	}

	return t, nil
}

func requiredString(idx int, item gjson.Result, path string) (string, error) {

	r := item.Get(path)

	if !r.Exists() || r.Type == gjson.Null {
		return "", &ShapeError{Index: idx, Field: path, Err: ErrMissingField}
	}

	return r.String(), nil
}

// optionalString returns nil when any element of 'path' is absent or null.
func optionalString(item gjson.Result, path string) *string {

	r := item.Get(path)

	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}

	s := r.String()
	return &s
}

func optionalFloat(item gjson.Result, path string) *float64 {

	r := item.Get(path)

	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}

	f := r.Float()
	return &f
}
