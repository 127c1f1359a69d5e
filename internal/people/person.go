package people

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Metadata is the service bookkeeping attached to each list item. It is
// passed through unchanged.
type Metadata struct {
	ID   string `json:"id,omitempty"`
	URI  string `json:"uri,omitempty"`
	ETag string `json:"etag,omitempty"`
	Type string `json:"type,omitempty"`
}

type Person struct {
	Metadata   *Metadata `json:"__metadata,omitempty"`
	ID         int       `json:"Id"`
	LastName   string    `json:"LastName"`
	FirstName  string    `json:"FirstName"`
	EMail      string    `json:"EMail"`
	Picture    Picture   `json:"Picture"`
	Department string    `json:"Department"`
	JobTitle   string    `json:"JobTitle"`
	WorkPhone  string    `json:"WorkPhone"`
	Office     string    `json:"Office"`
}

func (p Person) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Picture holds either a plain URL string or a URL field value object.
// Decoded values are encoded again exactly as they were read.
type Picture struct {
	URL         string
	Description string
	raw         json.RawMessage
}

func (p Picture) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	if p.URL == "" {
		return []byte("null"), nil
	}
	return json.Marshal(p.URL)
}

func (p *Picture) UnmarshalJSON(data []byte) error {
	var trimmed = bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*p = Picture{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var field struct {
			URL         string `json:"Url"`
			Description string `json:"Description"`
		}
		if err := json.Unmarshal(trimmed, &field); err != nil {
			return err
		}
		*p = Picture{URL: field.URL, Description: field.Description, raw: append(json.RawMessage(nil), trimmed...)}
		return nil
	}
	var url string
	if err := json.Unmarshal(trimmed, &url); err != nil {
		return err
	}
	*p = Picture{URL: url, raw: append(json.RawMessage(nil), trimmed...)}
	return nil
}

type Collection struct {
	Results []Person `json:"results"`
}

// Envelope is the verbose OData response wrapper { "d": { "results": [...] } }.
type Envelope struct {
	D Collection `json:"d"`
}

func NewEnvelope(people []Person) Envelope {
	if people == nil {
		people = []Person{}
	}
	return Envelope{D: Collection{Results: people}}
}
