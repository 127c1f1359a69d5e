package people

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwkr/peopledir/internal/odata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureStore_Query(t *testing.T) {
	var store = NewFixtureStore(fixtureFilename)
	require.NoError(t, store.Ping())

	q, err := odata.BySearch("sales", 3)
	require.NoError(t, err)
	people, err := store.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 21}, ids(people))
	require.NotNil(t, people[0].Metadata)
	assert.Equal(t, "SP.Data.UserInfoItem", people[0].Metadata.Type)
}

func TestFixtureStore_ReadsFileOnEveryQuery(t *testing.T) {
	var filename = filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{"d":{"results":[{"Id":1,"LastName":"Adler"}]}}`), 0644))

	var store = NewFixtureStore(filename)
	q, _ := odata.ByInitial("A")
	people, err := store.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(people))

	require.NoError(t, os.WriteFile(filename, []byte(`{"d":{"results":[{"Id":1,"LastName":"Adler"},{"Id":2,"LastName":"Arendt"}]}}`), 0644))
	people, err = store.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(people))
}

func TestFixtureStore_Errors(t *testing.T) {
	var missing = NewFixtureStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, missing.Ping())

	q, _ := odata.ByInitial("A")
	_, err := missing.Query(context.Background(), q)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var filename = filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{"d":`), 0644))
	_, err = NewFixtureStore(filename).Query(context.Background(), q)
	assert.ErrorContains(t, err, "broken.json")
}

func TestFixtureStore_CanceledContext(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	q, _ := odata.ByInitial("A")
	_, err := NewFixtureStore(fixtureFilename).Query(ctx, q)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInMemoryStore_Query(t *testing.T) {
	var store = NewInMemoryStore([]Person{
		{ID: 1, LastName: "Kowalski", FirstName: "Jan", Department: "IT"},
		{ID: 2, LastName: "Klein", FirstName: "Eva", Department: "Legal"},
		{ID: 3, LastName: "Novak", FirstName: "Klara", Department: "IT Security"},
	})
	require.NoError(t, store.Ping())

	q, _ := odata.ByInitial("K")
	people, err := store.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(people))

	q, _ = odata.BySearch("kla", 3)
	people, err = store.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids(people))
}
