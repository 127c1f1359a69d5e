package people

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/cwkr/peopledir/internal/httputil"
	"github.com/cwkr/peopledir/internal/odata"
)

const AcceptVerboseJSON = "application/json;odata=verbose"

type forwardedHeadersKey struct{}

// forwardedHeaderNames carry the hosting environment's session to the
// directory service.
var forwardedHeaderNames = []string{"Authorization", "Cookie"}

// WithForwardedHeaders attaches the caller's session headers to ctx so the
// SharePoint store can pass them on.
func WithForwardedHeaders(ctx context.Context, header http.Header) context.Context {
	var forwarded = http.Header{}
	for _, name := range forwardedHeaderNames {
		if values := header.Values(name); len(values) > 0 {
			forwarded[name] = values
		}
	}
	if len(forwarded) == 0 {
		return ctx
	}
	return context.WithValue(ctx, forwardedHeadersKey{}, forwarded)
}

type sharePointStore struct {
	siteURL string
	client  *http.Client
}

func NewSharePointStore(siteURL string, client *http.Client) (Store, error) {
	siteURL = strings.TrimSpace(siteURL)
	if !strings.HasPrefix(siteURL, "http://") && !strings.HasPrefix(siteURL, "https://") {
		return nil, fmt.Errorf("site_url must be an http or https URL: %q", siteURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &sharePointStore{
		siteURL: strings.TrimRight(siteURL, "/"),
		client:  client,
	}, nil
}

func (s sharePointStore) Query(ctx context.Context, query odata.Query) ([]Person, error) {
	var requestURL = query.URL(s.siteURL)

	if query.Unsafe() {
		log.Printf("!!! search term contains a quote and is not escaped: %q", query.Term)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", AcceptVerboseJSON)
	if forwarded, ok := ctx.Value(forwardedHeadersKey{}).(http.Header); ok {
		for name, values := range forwarded {
			req.Header[name] = values
		}
	}

	log.Printf("HTTP: GET %s", requestURL)
	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("!!! SharePoint request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		var statusErr = NewStatusError(resp)
		log.Printf("!!! %v", statusErr)
		return nil, statusErr
	}

	// a login page answers with 200 and HTML when the forwarded session is not accepted
	if contentType := resp.Header.Get("Content-Type"); !httputil.IsJSON(contentType) {
		io.Copy(io.Discard, resp.Body)
		log.Printf("!!! SharePoint answered with %q instead of JSON", contentType)
		return nil, fmt.Errorf("%w: %q", ErrNotJSON, contentType)
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		log.Printf("!!! Decoding SharePoint response failed: %v", err)
		return nil, err
	}
	return envelope.D.Results, nil
}

func (s sharePointStore) Ping() error {
	resp, err := s.client.Head(s.siteURL + odata.Endpoint)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return NewStatusError(resp)
	}
	return nil
}
