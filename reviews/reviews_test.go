package reviews

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const page_html string = `<html><body>
<ul>
  <li class="acD_-reviews-row-header">
    <span class="wdjx-positive">9.2</span>
    <span class="acD_-score-description">Superb</span>
    <span class="acD_-userName">Anna, March 2024</span>
    <div class="acD_-pros"><span id="showMoreText-1"> Great location </span></div>
  </li>
  <li class="acD_-reviews-row-header">
    <span class="wdjx-positive">6.0</span>
    <span class="acD_-userName">Bob, April 2024</span>
  </li>
</ul>
</body></html>`

type fakeFetcher struct {
	PageFetcher
	pages map[string]string
}

func (f *fakeFetcher) FetchHTML(ctx context.Context, url string, wait_for string) (string, error) {

	html, exists := f.pages[url]

	if !exists {
		return "", errors.New("timed out waiting for reviews")
	}

	return html, nil
}

func TestExtract(t *testing.T) {

	results, err := Extract("http://hotel/1", page_html, DefaultSelectors())
	require.NoError(t, err)
	require.Len(t, results, 2)

	r := results[0]

	require.Equal(t, "http://hotel/1", r.URL)
	require.Equal(t, "9.2", *r.Rating)
	require.Equal(t, "Superb", *r.ScoreDescription)
	require.Equal(t, "Anna, March 2024", *r.User)
	require.Equal(t, "Great location", *r.Pros)

	r = results[1]

	require.Equal(t, "6.0", *r.Rating)
	require.Nil(t, r.ScoreDescription)
	require.Nil(t, r.Pros)
}

func TestExtractNoReviews(t *testing.T) {

	results, err := Extract("http://hotel/2", "<html><body></body></html>", DefaultSelectors())
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestReadTargets(t *testing.T) {

	path := filepath.Join(t.TempDir(), "hotels.txt")

	body := "http://hotel/1\n\n# skip me\n  http://hotel/2  \n"

	err := os.WriteFile(path, []byte(body), 0644)
	require.NoError(t, err)

	urls, err := ReadTargets(path)
	require.NoError(t, err)
	require.Equal(t, []string{"http://hotel/1", "http://hotel/2"}, urls)

	_, err = ReadTargets(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestScrape(t *testing.T) {

	ctx := context.Background()

	f := &fakeFetcher{
		pages: map[string]string{
			"http://hotel/1": page_html,
		},
	}

	urls := []string{"http://hotel/1", "http://hotel/missing"}

	results, errs := Scrape(ctx, f, urls, DefaultSelectors())

	require.Len(t, results, 2)
	require.Len(t, errs, 1)

	tb := Table(results)

	require.Equal(t, []string{"url", "Rating", "Score Description", "User", "Pros"}, tb.Columns())
	require.Equal(t, 2, tb.Len())
	require.Equal(t, "Superb", tb.Row(0)["Score Description"])
	require.Nil(t, tb.Row(1)["Pros"])
}
