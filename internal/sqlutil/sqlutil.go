package sqlutil

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/sijms/go-ora/v2"
	_ "modernc.org/sqlite"
)

const (
	PrefixPostgres   = "postgres:"
	PrefixPostgresql = "postgresql:"
	PrefixOracle     = "oracle:"
	PrefixSqlite     = "sqlite:"
)

func IsDatabaseURI(uri string) bool {
	var _, _, err = DriverName(uri)
	return err == nil
}

// DriverName maps a store URI to its database/sql driver and data source name.
func DriverName(uri string) (string, string, error) {
	switch {
	case strings.HasPrefix(uri, PrefixPostgres), strings.HasPrefix(uri, PrefixPostgresql):
		return "postgres", uri, nil
	case strings.HasPrefix(uri, PrefixOracle):
		return "oracle", uri, nil
	case strings.HasPrefix(uri, PrefixSqlite):
		return "sqlite", strings.TrimPrefix(strings.TrimPrefix(uri, PrefixSqlite), "//"), nil
	}
	return "", "", fmt.Errorf("unsupported database uri: %q", uri)
}

// GetDB opens one pool per URI and shares it between stores.
func GetDB(dbs map[string]*sql.DB, uri string) (*sql.DB, error) {
	if db, found := dbs[uri]; found {
		return db, nil
	}
	var driverName, dataSourceName, err = DriverName(uri)
	if err != nil {
		return nil, err
	}
	log.Printf("Opening %s database connection", driverName)
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	dbs[uri] = db
	return db, nil
}
