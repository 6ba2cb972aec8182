// Package source gives the playback engine one uniform way to open a track's
// byte stream, whether the locator is a local path or an HTTP URL.
package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"dfjuke/domain"
)

// ErrNotFound means the locator does not resolve to a readable source.
var ErrNotFound = errors.New("source not found")

// ErrConnection means a remote source could not be reached or refused to
// stream.
var ErrConnection = errors.New("source connection failed")

// Handle is an open byte stream. Read follows the io.Reader contract and
// returns io.EOF at end of stream. Close must be called on every exit path
// from active playback; it is never called twice without a new Open.
type Handle interface {
	io.ReadCloser
}

// Opener resolves locators into open handles.
type Opener interface {
	Open(locator string) (Handle, error)
}

// Resolver opens local files and HTTP streams. A non-empty BaseDir is tried
// as a fallback root when a local locator does not resolve as given.
type Resolver struct {
	BaseDir string
	Client  *http.Client
}

// NewResolver creates a Resolver with a default HTTP client. No request
// timeout is set: track streams are long-lived by design and are torn down
// by closing the handle.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir, Client: &http.Client{}}
}

// Open resolves the locator and returns a streaming handle. Errors wrap
// ErrNotFound or ErrConnection so callers can branch with errors.Is.
func (r *Resolver) Open(locator string) (Handle, error) {
	if domain.RemoteLocator(locator) {
		return r.openRemote(locator)
	}
	return r.openLocal(locator)
}

func (r *Resolver) openLocal(locator string) (Handle, error) {
	f, err := os.Open(locator)
	if err == nil {
		return f, nil
	}
	if r.BaseDir != "" {
		f, retryErr := os.Open(filepath.Join(r.BaseDir, locator))
		if retryErr == nil {
			return f, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "open %s: %v", locator, err)
}

func (r *Resolver) openRemote(locator string) (Handle, error) {
	resp, err := r.Client.Get(locator)
	if err != nil {
		return nil, errors.Wrapf(ErrConnection, "get %s: %v", locator, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, errors.Wrapf(ErrNotFound, "get %s: %s", locator, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Wrapf(ErrConnection, "get %s: %s", locator, resp.Status)
	}
	return resp.Body, nil
}

var _ Opener = (*Resolver)(nil)

// Describe renders an open error as a short user-facing status message.
func Describe(locator string, err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("file error: %s not found", locator)
	case errors.Is(err, ErrConnection):
		return fmt.Sprintf("file error: cannot reach %s", locator)
	default:
		return fmt.Sprintf("file error: %s", locator)
	}
}
