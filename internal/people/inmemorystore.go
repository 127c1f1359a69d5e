package people

import (
	"context"
	"log"

	"github.com/cwkr/peopledir/internal/odata"
)

type inMemoryStore struct {
	people []Person
}

func NewInMemoryStore(people []Person) Store {
	return &inMemoryStore{
		people: people,
	}
}

func (i inMemoryStore) Query(ctx context.Context, query odata.Query) ([]Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var filtered, err = Filter(i.people, query)
	if err != nil {
		return nil, err
	}
	log.Printf("MEM: %s; # %d of %d", query, len(filtered), len(i.people))
	return filtered, nil
}

func (i inMemoryStore) Ping() error {
	return nil
}
