// Package spatial adds Who's On First hierarchy columns to tables of places by reverse
// geocoding their coordinates.
package spatial

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Alberto-Martinelli/webscraping-project/table"
)

const PARENT_ID string = "wof:parent_id"

const BELONGS_TO string = "wof:belongs_to"

const HIERARCHIES string = "wof:hierarchies"

// Hierarchy is the reverse geocoding result for a single point. ParentId is -1 when no
// parent could be found.
type Hierarchy struct {
	ParentId    int64
	BelongsTo   []int64
	Hierarchies string
}

// Resolver derives a Hierarchy for a point.
type Resolver interface {
	Resolve(ctx context.Context, id string, lat float64, lon float64) (*Hierarchy, error)
}

type Result struct {
	Resolved int64
	Skipped  int64
	Failed   int64
}

// Enrich resolves the coordinates of every row in 't' and writes the parent ID, the
// comma-separated list of ancestor IDs and the hierarchies string to each row. Rows
// without coordinates, or whose lookup fails, are assigned a parent ID of -1. At most
// 'workers' lookups run at once.
func Enrich(ctx context.Context, t *table.Table, r Resolver, workers int) (*Result, error) {

	if workers < 1 {
		workers = 1
	}

	for _, col := range []string{PARENT_ID, BELONGS_TO, HIERARCHIES} {
		t.AddColumn(col)
	}

	rsp := new(Result)

	wg := new(sync.WaitGroup)
	throttle := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		throttle <- true
	}

	for idx := 0; idx < t.Len(); idx++ {

		if ctx.Err() != nil {
			break
		}

		row := t.Row(idx)

		lat, lat_ok := coordinate(row["latitude"])
		lon, lon_ok := coordinate(row["longitude"])

		if !lat_ok || !lon_ok {
			setHierarchy(row, nil)
			atomic.AddInt64(&rsp.Skipped, 1)
			continue
		}

		<-throttle
		wg.Add(1)

		go func(row table.Row) {

			defer func() {
				throttle <- true
				wg.Done()
			}()

			id, _ := row[t.Key()].(string)

			h, err := r.Resolve(ctx, id, lat, lon)

			if err != nil {
				slog.Error("Failed to resolve hierarchy", "id", id, "error", err)
				atomic.AddInt64(&rsp.Failed, 1)
				h = nil
			} else {
				atomic.AddInt64(&rsp.Resolved, 1)
			}

			setHierarchy(row, h)
		}(row)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return rsp, ctx.Err()
	}

	return rsp, nil
}

// Each row is written by exactly one goroutine.
func setHierarchy(row table.Row, h *Hierarchy) {

	if h == nil {
		h = &Hierarchy{
			ParentId:  -1,
			BelongsTo: make([]int64, 0),
		}
	}

	row[PARENT_ID] = strconv.FormatInt(h.ParentId, 10)
	row[BELONGS_TO] = int64ToCSV(h.BelongsTo)
	row[HIERARCHIES] = h.Hierarchies
}

// coordinate accepts both float values (freshly normalized rows) and strings (rows read
// back from an export).
func coordinate(v any) (float64, bool) {

	switch v := v.(type) {
	case float64:
		return v, true
	case string:

		f, err := strconv.ParseFloat(v, 64)

		if err != nil {
			return 0.0, false
		}

		return f, true

	default:
		return 0.0, false
	}
}

func int64ToCSV(i64_list []int64) string {

	str_list := make([]string, len(i64_list))

	for i, id := range i64_list {
		str_list[i] = strconv.FormatInt(id, 10)
	}

	return strings.Join(str_list, ",")
}
