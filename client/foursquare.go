package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

const FOURSQUARE_ENDPOINT string = "https://api.foursquare.com/v3/"

// FoursquareClient talks to the Foursquare Places API using the raw API key as the
// value of the Authorization header.
type FoursquareClient struct {
	Client
	http *resty.Client
}

func init() {

	ctx := context.Background()
	err := RegisterClient(ctx, "foursquare", NewFoursquareClient)

	if err != nil {
		panic(err)
	}
}

// NewFoursquareClient returns a new `FoursquareClient` configured by 'uri' which is expected
// to take the form of:
//
//	foursquare://?key={API_KEY}&endpoint={URL}
//
// Where 'endpoint' is optional and defaults to FOURSQUARE_ENDPOINT.
func NewFoursquareClient(ctx context.Context, uri string) (Client, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	q := u.Query()

	key := q.Get("key")

	if key == "" {
		return nil, fmt.Errorf("Missing ?key= parameter")
	}

	endpoint := FOURSQUARE_ENDPOINT

	if q.Has("endpoint") {
		endpoint = q.Get("endpoint")
	}

	if !strings.HasSuffix(endpoint, "/") {
		endpoint = endpoint + "/"
	}

	http_cl := resty.New()
	http_cl.SetBaseURL(endpoint)
	http_cl.SetHeader("Accept", "application/json")
	http_cl.SetHeader("Authorization", key)

	cl := &FoursquareClient{
		http: http_cl,
	}

	return cl, nil
}

// Get issues a single GET request for 'path', relative to the client's endpoint.
func (cl *FoursquareClient) Get(ctx context.Context, path string) ([]byte, error) {

	rsp, err := cl.http.R().
		SetContext(ctx).
		Get(strings.TrimLeft(path, "/"))

	if err != nil {
		return nil, fmt.Errorf("Failed to request %s, %w", path, err)
	}

	if rsp.StatusCode() != http.StatusOK {

		err := &StatusError{
			Path:       path,
			StatusCode: rsp.StatusCode(),
			Status:     rsp.Status(),
		}

		return nil, err
	}

	return rsp.Body(), nil
}

// SearchPath returns the path for a places search with 'q' as its query string.
func SearchPath(q url.Values) string {

	if len(q) == 0 {
		return "places/search"
	}

	return fmt.Sprintf("places/search?%s", q.Encode())
}

// TipsPath returns the path for the tips belonging to the place 'id'.
func TipsPath(id string) string {
	return fmt.Sprintf("places/%s/tips", url.PathEscape(id))
}
