package places

import (
	"net/url"
	"strconv"
)

// SearchQuery holds the parameters of a places search request. Zero values are omitted.
type SearchQuery struct {
	Query      string `json:"query,omitempty"`
	Near       string `json:"near,omitempty"`
	LatLon     string `json:"ll,omitempty"`
	Radius     int    `json:"radius,omitempty"`
	Categories string `json:"categories,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func (q SearchQuery) Values() url.Values {

	v := url.Values{}

	set := func(k string, s string) {

		if s != "" {
			v.Set(k, s)
		}
	}

	set("query", q.Query)
	set("near", q.Near)
	set("ll", q.LatLon)
	set("categories", q.Categories)

	if q.Radius > 0 {
		v.Set("radius", strconv.Itoa(q.Radius))
	}

	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}

	return v
}
