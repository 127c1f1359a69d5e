package people

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/blockloop/scan/v2"
	"github.com/cwkr/peopledir/internal/odata"
	"github.com/cwkr/peopledir/internal/sqlutil"
)

type sqlStore struct {
	dbconn   *sql.DB
	settings *StoreSettings
}

type PersonRow struct {
	ID         sql.NullInt64  `db:"id"`
	LastName   sql.NullString `db:"last_name"`
	FirstName  sql.NullString `db:"first_name"`
	EMail      sql.NullString `db:"email"`
	Picture    sql.NullString `db:"picture"`
	Department sql.NullString `db:"department"`
	JobTitle   sql.NullString `db:"job_title"`
	WorkPhone  sql.NullString `db:"work_phone"`
	Office     sql.NullString `db:"office"`
}

func (p PersonRow) Person() Person {
	return Person{
		ID:         int(p.ID.Int64),
		LastName:   p.LastName.String,
		FirstName:  p.FirstName.String,
		EMail:      p.EMail.String,
		Picture:    Picture{URL: p.Picture.String},
		Department: p.Department.String,
		JobTitle:   p.JobTitle.String,
		WorkPhone:  p.WorkPhone.String,
		Office:     p.Office.String,
	}
}

func NewSqlStore(dbs map[string]*sql.DB, settings *StoreSettings) (Store, error) {
	if dbconn, err := sqlutil.GetDB(dbs, settings.URI); err != nil {
		return nil, err
	} else {
		return &sqlStore{
			dbconn:   dbconn,
			settings: settings,
		}, nil
	}
}

func (p sqlStore) Query(ctx context.Context, query odata.Query) ([]Person, error) {
	var statement string
	if query.Mode == odata.ModeInitial {
		// SELECT id, last_name, first_name, email, picture, department, job_title, work_phone, office
		// FROM people WHERE last_name LIKE $1 || '%' ORDER BY last_name
		statement = p.settings.InitialQuery
	} else {
		// SELECT id, last_name, first_name, email, picture, department, job_title, work_phone, office
		// FROM people WHERE lower(first_name || ' ' || last_name || ' ' || coalesce(email, '') ...) LIKE '%' || lower($1) || '%'
		// ORDER BY last_name
		statement = p.settings.SearchQuery
	}
	if strings.TrimSpace(statement) == "" {
		log.Printf("!!! SQL query for %s empty", query.Mode)
		return []Person{}, nil
	}

	var rowsData []PersonRow
	log.Printf("SQL: %s; -- %s", statement, query.Term)
	if rows, err := p.dbconn.QueryContext(ctx, statement, query.Term); err == nil {
		if err := scan.Rows(&rowsData, rows); err != nil {
			log.Printf("!!! Scan people failed: %v", err)
			return nil, err
		}
	} else {
		log.Printf("!!! Query for people failed: %v", err)
		return nil, err
	}

	var people = make([]Person, 0, len(rowsData))
	for _, row := range rowsData {
		people = append(people, row.Person())
	}
	return people, nil
}

func (p sqlStore) Ping() error {
	return p.dbconn.Ping()
}
