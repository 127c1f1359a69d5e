package directory

import (
	"context"
	"testing"

	"github.com/cwkr/peopledir/internal/people"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocalHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"localhost:6080", true},
		{"LOCALHOST", true},
		{"127.0.0.1", false},
		{"intranet.example.com", false},
		{"intranet.example.com:443", false},
		{"localhost.example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLocalHost(tt.host); got != tt.want {
			t.Errorf("IsLocalHost(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestSelectStore(t *testing.T) {
	var remote, local = &stubStore{}, &stubStore{}
	tests := []struct {
		name string
		mode string
		host string
		want people.Store
	}{
		{"auto localhost", "", "localhost:6080", local},
		{"auto other host", ModeAuto, "intranet.example.com", remote},
		{"forced local", ModeLocal, "intranet.example.com", local},
		{"forced remote", "Remote", "localhost", remote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectStore(tt.mode, tt.host, remote, local)
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestSelectStore_Errors(t *testing.T) {
	_, err := SelectStore("offline", "localhost", &stubStore{}, &stubStore{})
	assert.ErrorContains(t, err, "unsupported mode")

	_, err = SelectStore(ModeAuto, "intranet.example.com", nil, &stubStore{})
	assert.ErrorContains(t, err, "no remote people store")
}

func TestDirectory_LocalFixture(t *testing.T) {
	var store, err = SelectStore(ModeAuto, "localhost", nil, people.NewFixtureStore("../../assets/mockdata/users.json"))
	require.NoError(t, err)
	var d = New(store, Settings{SearchMinLength: 3})

	d.SetInitial(context.Background(), "D")
	var state = d.Snapshot()
	require.Len(t, state.People, 1)
	assert.Equal(t, "Dubois", state.People[0].LastName)

	d.Search(context.Background(), "sales")
	state = d.Snapshot()
	require.Len(t, state.People, 2)
	assert.Equal(t, "Adams", state.People[0].LastName)
	assert.Equal(t, "Chen", state.People[1].LastName)
	assert.Empty(t, state.Error)
}
