package people

type StoreSettings struct {
	URI          string            `json:"uri,omitempty" toml:"uri,omitempty"`
	InitialQuery string            `json:"initial_query,omitempty" toml:"initial_query,omitempty"`
	SearchQuery  string            `json:"search_query,omitempty" toml:"search_query,omitempty"`
	Parameters   map[string]string `json:"parameters,omitempty" toml:"parameters,omitempty"`
}
