package emitter

import (
	"context"
	"iter"
	"net/url"
	"os"

	"github.com/Alberto-Martinelli/webscraping-project"
)

// JSONEmitter normalizes an API payload saved to disk.
type JSONEmitter struct {
	Emitter
	body []byte
}

func init() {

	ctx := context.Background()
	err := RegisterEmitter(ctx, "json", NewJSONEmitter)

	if err != nil {
		panic(err)
	}
}

// NewJSONEmitter returns a new `JSONEmitter` configured by 'uri' which is expected to take
// the form of:
//
//	json:///path/to/payload.json
func NewJSONEmitter(ctx context.Context, uri string) (Emitter, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	body, err := os.ReadFile(derivePath(u))

	if err != nil {
		return nil, err
	}

	e := &JSONEmitter{
		body: body,
	}

	return e, nil
}

func (e *JSONEmitter) Emit(ctx context.Context) iter.Seq2[places.Record, error] {
	return places.Emit(ctx, e.body)
}

func (e *JSONEmitter) Close() error {
	return nil
}
