package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/Alberto-Martinelli/webscraping-project/table"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type GeoJSONExporter struct {
	Exporter
	path      string
	latitude  string
	longitude string
}

func init() {

	ctx := context.Background()
	err := RegisterExporter(ctx, "geojson", NewGeoJSONExporter)

	if err != nil {
		panic(err)
	}
}

// NewGeoJSONExporter returns a new `GeoJSONExporter` configured by 'uri' which is expected to
// take the form of:
//
//	geojson:///path/to/file.geojson?latitude={COLUMN}&longitude={COLUMN}
//
// Where 'latitude' and 'longitude' are optional and default to "latitude" and "longitude".
func NewGeoJSONExporter(ctx context.Context, uri string) (Exporter, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	path := derivePath(u)

	if path == "" {
		return nil, fmt.Errorf("Missing path")
	}

	q := u.Query()

	e := &GeoJSONExporter{
		path:      path,
		latitude:  "latitude",
		longitude: "longitude",
	}

	if q.Has("latitude") {
		e.latitude = q.Get("latitude")
	}

	if q.Has("longitude") {
		e.longitude = q.Get("longitude")
	}

	return e, nil
}

// Export writes a FeatureCollection with one Point feature per row. Rows without numeric
// coordinates are skipped. Every other column is stored as a feature property.
func (e *GeoJSONExporter) Export(ctx context.Context, t *table.Table) error {

	fc := geojson.NewFeatureCollection()

	for idx := 0; idx < t.Len(); idx++ {

		row := t.Row(idx)

		lat, lat_ok := row[e.latitude].(float64)
		lon, lon_ok := row[e.longitude].(float64)

		if !lat_ok || !lon_ok {
			slog.Debug("Skipping row without coordinates", "id", row[t.Key()])
			continue
		}

		f := geojson.NewFeature(orb.Point([2]float64{lon, lat}))

		for k, v := range row {

			if k == e.latitude || k == e.longitude {
				continue
			}

			f.Properties[k] = v
		}

		fc.Append(f)
	}

	body, err := fc.MarshalJSON()

	if err != nil {
		return fmt.Errorf("Failed to marshal feature collection, %w", err)
	}

	return os.WriteFile(e.path, body, 0644)
}

func (e *GeoJSONExporter) Close() error {
	return nil
}
