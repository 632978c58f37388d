package client

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
)

// Client fetches API resources. Implementations return the body of a successful (HTTP 200)
// response; anything else is an error and no body.
type Client interface {
	Get(context.Context, string) ([]byte, error)
}

// StatusError is returned by a Client when the API responds with anything other than 200.
type StatusError struct {
	Path       string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d %s", e.Path, e.StatusCode, e.Status)
}

var client_roster roster.Roster

// ClientInitializationFunc is a function defined by individual client package and used to create
// an instance of that client
type ClientInitializationFunc func(ctx context.Context, uri string) (Client, error)

// RegisterClient registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `Client` instances by the `NewClient` method.
func RegisterClient(ctx context.Context, scheme string, init_func ClientInitializationFunc) error {

	err := ensureClientRoster()

	if err != nil {
		return err
	}

	return client_roster.Register(ctx, scheme, init_func)
}

func ensureClientRoster() error {

	if client_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		client_roster = r
	}

	return nil
}

// NewClient returns a new `Client` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `ClientInitializationFunc`
// function used to instantiate the new `Client`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterClient` method.
func NewClient(ctx context.Context, uri string) (Client, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	err = ensureClientRoster()

	if err != nil {
		return nil, err
	}

	i, err := client_roster.Driver(ctx, u.Scheme)

	if err != nil {
		return nil, err
	}

	init_func := i.(ClientInitializationFunc)
	return init_func(ctx, uri)
}

// ClientSchemes returns the list of schemes that have been registered.
func ClientSchemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureClientRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range client_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}
