package exporter

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Alberto-Martinelli/webscraping-project/table"
	"github.com/aaronland/go-roster"
)

// Exporter writes a table to some destination.
type Exporter interface {
	Export(context.Context, *table.Table) error
	Close() error
}

var exporter_roster roster.Roster

// ExporterInitializationFunc is a function defined by individual exporter package and used to create
// an instance of that exporter
type ExporterInitializationFunc func(ctx context.Context, uri string) (Exporter, error)

// RegisterExporter registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `Exporter` instances by the `NewExporter` method.
func RegisterExporter(ctx context.Context, scheme string, init_func ExporterInitializationFunc) error {

	err := ensureExporterRoster()

	if err != nil {
		return err
	}

	return exporter_roster.Register(ctx, scheme, init_func)
}

func ensureExporterRoster() error {

	if exporter_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		exporter_roster = r
	}

	return nil
}

// NewExporter returns a new `Exporter` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `ExporterInitializationFunc`
// function used to instantiate the new `Exporter`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterExporter` method.
func NewExporter(ctx context.Context, uri string) (Exporter, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	err = ensureExporterRoster()

	if err != nil {
		return nil, err
	}

	i, err := exporter_roster.Driver(ctx, u.Scheme)

	if err != nil {
		return nil, err
	}

	init_func := i.(ExporterInitializationFunc)
	return init_func(ctx, uri)
}

// ExporterSchemes returns the list of schemes that have been registered.
func ExporterSchemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureExporterRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range exporter_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}

// derivePath returns the filesystem path encoded in 'u'. Both "scheme:///abs/path" and
// "scheme://rel/path" forms are supported.
func derivePath(u *url.URL) string {
	return filepath.FromSlash(u.Host + u.Path)
}
