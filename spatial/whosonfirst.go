package spatial

// This assumes a PMTiles spatial database described here:
// https://millsfield.sfomuseum.org/blog/2022/12/19/pmtiles-pip/

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/whosonfirst/go-whosonfirst-spatial-pmtiles"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/whosonfirst/go-whosonfirst-feature/properties"
	wof_reader "github.com/whosonfirst/go-whosonfirst-reader"
	"github.com/whosonfirst/go-whosonfirst-spatial/database"
	"github.com/whosonfirst/go-whosonfirst-spatial/filter"
	"github.com/whosonfirst/go-whosonfirst-spatial/hierarchy"
	hierarchy_filter "github.com/whosonfirst/go-whosonfirst-spatial/hierarchy/filter"
)

// Placetypes whose IDs make up each colon-separated element of Hierarchy.Hierarchies.
var hierarchy_candidates = []string{
	"neighbourhood_id",
	"locality_id",
	"region_id",
	"country_id",
	"continent_id",
}

// WhosOnFirstResolver resolves points against a go-whosonfirst-spatial database.
type WhosOnFirstResolver struct {
	Resolver
	spatial_db database.SpatialDatabase
	resolver   *hierarchy.PointInPolygonHierarchyResolver
	inputs     *filter.SPRInputs
}

// NewWhosOnFirstResolver returns a `WhosOnFirstResolver` for the spatial database described
// by 'uri', for example:
//
//	pmtiles://?tiles=file:///usr/local/data/pmtiles/&database=whosonfirst-point-in-polygon-z13-20240406&enable-cache=true&zoom=13&layer=whosonfirst
func NewWhosOnFirstResolver(ctx context.Context, uri string) (*WhosOnFirstResolver, error) {

	spatial_db, err := database.NewSpatialDatabase(ctx, uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to create spatial database, %w", err)
	}

	resolver_opts := &hierarchy.PointInPolygonHierarchyResolverOptions{
		Database: spatial_db,
	}

	resolver, err := hierarchy.NewPointInPolygonHierarchyResolver(ctx, resolver_opts)

	if err != nil {
		spatial_db.Close(ctx)
		return nil, fmt.Errorf("Failed to create hierarchy resolver, %w", err)
	}

	inputs := &filter.SPRInputs{}
	inputs.IsCurrent = []int64{1}

	r := &WhosOnFirstResolver{
		spatial_db: spatial_db,
		resolver:   resolver,
		inputs:     inputs,
	}

	return r, nil
}

func (r *WhosOnFirstResolver) Resolve(ctx context.Context, id string, lat float64, lon float64) (*Hierarchy, error) {

	h := &Hierarchy{
		ParentId:  -1,
		BelongsTo: make([]int64, 0),
	}

	pt := orb.Point([2]float64{lon, lat})
	f := geojson.NewFeature(pt)

	f.Properties["wof:id"] = id
	f.Properties["wof:placetype"] = "venue"
	f.Properties["lbl:latitude"] = lat
	f.Properties["lbl:longitude"] = lon

	body, err := f.MarshalJSON()

	if err != nil {
		return nil, fmt.Errorf("Failed to marshal feature, %w", err)
	}

	possible, err := r.resolver.PointInPolygon(ctx, r.inputs, body)

	if err != nil {
		return nil, fmt.Errorf("Failed to resolve point in polygon, %w", err)
	}

	parent_spr, err := hierarchy_filter.FirstButForgivingSPRResultsFunc(ctx, r.spatial_db, body, possible)

	if err != nil {
		return nil, fmt.Errorf("Failed to filter results, %w", err)
	}

	if parent_spr == nil {
		return h, nil
	}

	parent_id, err := strconv.ParseInt(parent_spr.Id(), 10, 64)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse parent ID '%s', %w", parent_spr.Id(), err)
	}

	h.ParentId = parent_id
	h.BelongsTo = parent_spr.BelongsTo()

	parent_body, err := wof_reader.LoadBytes(ctx, r.spatial_db, parent_id)

	if err != nil {
		slog.Warn("Failed to derive record from properties reader", "id", parent_id, "error", err)
		return h, nil
	}

	hierarchies := properties.Hierarchies(parent_body)
	str_hier := make([]string, len(hierarchies))

	for i, hier := range hierarchies {

		hier_csv := make([]string, len(hierarchy_candidates))

		for j, k := range hierarchy_candidates {

			v := ""
			ancestor_id, exists := hier[k]

			if exists {
				v = strconv.FormatInt(ancestor_id, 10)
			}

			hier_csv[j] = v
		}

		str_hier[i] = strings.Join(hier_csv, ":")
	}

	h.Hierarchies = strings.Join(str_hier, ",")
	return h, nil
}

func (r *WhosOnFirstResolver) Close(ctx context.Context) error {
	return r.spatial_db.Close(ctx)
}
