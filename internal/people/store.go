package people

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cwkr/peopledir/internal/odata"
)

var (
	ErrPersonNotFound   = errors.New("person not found")
	ErrUnsupportedStore = errors.New("unsupported or empty people_store.uri")
	ErrNotJSON          = errors.New("unexpected response content type")
)

type Store interface {
	Query(ctx context.Context, query odata.Query) ([]Person, error)
	Ping() error
}

// StatusError is returned when the directory service answers with a non-success status.
type StatusError struct {
	Code int
	Text string
}

func NewStatusError(resp *http.Response) *StatusError {
	var text = strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return &StatusError{Code: resp.StatusCode, Text: text}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("An error occurred. Status: %d, %s", e.Code, e.Text)
}
