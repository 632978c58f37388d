package reviews

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveRodFetcherOptions(t *testing.T) {

	opts := resolveRodFetcherOptions(nil)

	require.True(t, opts.Headless)
	require.Equal(t, DEFAULT_TIMEOUT, opts.Timeout)
	require.Equal(t, "", opts.ControlURL)

	custom := &RodFetcherOptions{
		ControlURL: "ws://127.0.0.1:9222/devtools/browser/x",
	}

	opts = resolveRodFetcherOptions(custom)

	require.False(t, opts.Headless)
	require.Equal(t, DEFAULT_TIMEOUT, opts.Timeout)
	require.Equal(t, custom.ControlURL, opts.ControlURL)
	require.Equal(t, time.Duration(0), custom.Timeout)

	opts = resolveRodFetcherOptions(&RodFetcherOptions{Timeout: 5 * time.Second})
	require.Equal(t, 5*time.Second, opts.Timeout)
}
