package people

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/cwkr/peopledir/internal/odata"
)

type fixtureStore struct {
	filename string
}

// NewFixtureStore serves a static envelope file for development without a
// live backend. The file is read on every query and filtered in process.
func NewFixtureStore(filename string) Store {
	return &fixtureStore{
		filename: filename,
	}
}

func (f fixtureStore) load() ([]Person, error) {
	var envelope Envelope
	if bytes, err := os.ReadFile(f.filename); err != nil {
		return nil, err
	} else if err := json.Unmarshal(bytes, &envelope); err != nil {
		return nil, fmt.Errorf("%s: %w", f.filename, err)
	}
	return envelope.D.Results, nil
}

func (f fixtureStore) Query(ctx context.Context, query odata.Query) ([]Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Printf("FILE: %s; # %s", f.filename, query)
	var people, err = f.load()
	if err != nil {
		log.Printf("!!! Loading fixture failed: %v", err)
		return nil, err
	}
	return Filter(people, query)
}

func (f fixtureStore) Ping() error {
	var _, err = os.Stat(f.filename)
	return err
}
