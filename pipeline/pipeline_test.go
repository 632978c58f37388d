package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Alberto-Martinelli/webscraping-project"
	"github.com/Alberto-Martinelli/webscraping-project/client"
	"github.com/Alberto-Martinelli/webscraping-project/enrich"
	"github.com/stretchr/testify/require"
)

const search_body string = `{"results": [
	{"fsq_id": "A1", "name": "Hotel X", "location": {}, "categories": [{"name":"Lodging"}], "link": "http://x"},
	{"fsq_id": "A2", "name": "Hotel Y", "location": {"country": "FR"}, "categories": [], "link": "http://y"},
	{"unexpected": true}
]}`

func newTestClient(t *testing.T) client.Client {

	handler := func(rsp http.ResponseWriter, req *http.Request) {

		switch req.URL.Path {
		case "/places/search":
			rsp.Write([]byte(search_body))
		case "/places/A1/tips":
			rsp.Write([]byte(`[{"text":"Great stay"},{"text":"Clean room"}]`))
		case "/places/A2/tips":
			http.Error(rsp, "Internal server error", http.StatusInternalServerError)
		case "/places/T1/tips":
			rsp.Write([]byte(`[{"id": "t1", "created_at": "2024-01-01T00:00:00.000Z", "text": "Great stay"}]`))
		default:
			http.Error(rsp, "Not found", http.StatusNotFound)
		}
	}

	s := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(s.Close)

	cl, err := client.NewClient(context.Background(), "foursquare://?key=s33kret&endpoint="+url.QueryEscape(s.URL))
	require.NoError(t, err)

	return cl
}

func TestRun(t *testing.T) {

	ctx := context.Background()
	cl := newTestClient(t)

	opts := &RunOptions{
		Query: places.SearchQuery{Query: "hotel", Near: "Paris"},
		Tips:  true,
	}

	rsp, err := Run(ctx, cl, opts)
	require.NoError(t, err)

	require.Equal(t, 3, rsp.Calls)
	require.Empty(t, rsp.Failures)
	require.Len(t, rsp.Rejected, 1)

	tb := rsp.Table

	require.Equal(t, 2, tb.Len())
	require.True(t, tb.HasColumn(enrich.TIPS_COLUMN))

	require.Equal(t, "Great stay, Clean room", tb.Row(0)[enrich.TIPS_COLUMN])
	require.Nil(t, tb.Row(1)[enrich.TIPS_COLUMN])
	require.Equal(t, "FR", tb.Row(1)["country"])

	require.NotNil(t, rsp.Enrich)
	require.Equal(t, 1, rsp.Enrich.Enriched)
	require.Len(t, rsp.Enrich.Failures, 1)
}

func TestRunWithoutTips(t *testing.T) {

	ctx := context.Background()
	cl := newTestClient(t)

	rsp, err := Run(ctx, cl, &RunOptions{})
	require.NoError(t, err)

	require.Equal(t, 1, rsp.Calls)
	require.Nil(t, rsp.Enrich)
	require.False(t, rsp.Table.HasColumn(enrich.TIPS_COLUMN))
}

func TestCollect(t *testing.T) {

	ctx := context.Background()
	cl := newTestClient(t)

	rsp, err := Collect(ctx, cl, client.TipsPath("T1"), client.TipsPath("missing"))
	require.NoError(t, err)

	require.Equal(t, 2, rsp.Calls)
	require.Len(t, rsp.Failures, 1)
	require.Equal(t, "places/missing/tips", rsp.Failures[0].Path)

	require.Equal(t, places.TEXT_ID, rsp.Table.Key())
	require.Equal(t, []string{"id", "created_at", "text"}, rsp.Table.Columns())
	require.Equal(t, 1, rsp.Table.Len())
}

func TestCollectEmpty(t *testing.T) {

	ctx := context.Background()
	cl := newTestClient(t)

	rsp, err := Collect(ctx, cl)
	require.NoError(t, err)

	require.Equal(t, 0, rsp.Calls)
	require.Equal(t, 0, rsp.Table.Len())
}
