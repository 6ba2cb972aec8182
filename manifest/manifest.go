// Package manifest loads the track list the jukebox plays from. The manifest
// is a single JSON document, read once at startup:
//
//	{"songs": [{"title": "Neon Nights", "file": "songs/neon.dfpwm"}, ...]}
//
// Each entry needs at least "file"; the display label comes from "title",
// then "name", then the file stem.
package manifest

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/pkg/errors"

	"dfjuke/domain"
)

type document struct {
	Songs []entry `json:"songs"`
}

type entry struct {
	Title string `json:"title"`
	Name  string `json:"name"`
	File  string `json:"file"`
}

// Load reads the manifest at the given locator (local path or URL) and
// returns the playable tracks. Any failure here is fatal to startup: a
// jukebox with no track list has nothing to do.
func Load(locator string) ([]domain.Track, error) {
	data, err := fetch(locator)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", locator)
	}
	if doc.Songs == nil {
		return nil, errors.Errorf("manifest %s has no \"songs\" list", locator)
	}

	tracks := make([]domain.Track, 0, len(doc.Songs))
	for _, e := range doc.Songs {
		if e.File == "" {
			log.Printf("manifest: skipping entry with no file (title=%q)", e.Title)
			continue
		}
		title := e.Title
		if title == "" {
			title = e.Name
		}
		tracks = append(tracks, domain.Track{Title: title, Locator: e.File})
	}
	if len(tracks) == 0 {
		return nil, errors.Errorf("manifest %s contains no playable songs", locator)
	}
	return tracks, nil
}

func fetch(locator string) ([]byte, error) {
	if domain.RemoteLocator(locator) {
		resp, err := http.Get(locator)
		if err != nil {
			return nil, errors.Wrapf(err, "fetch manifest %s", locator)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("fetch manifest %s: %s", locator, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(locator)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", locator)
	}
	return data, nil
}
