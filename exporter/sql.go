package exporter

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Alberto-Martinelli/webscraping-project/table"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const SQL_TABLE string = "places"

var re_identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLExporter writes a table to a database table. Every column is stored as TEXT using the
// same rendering as the CSV exporter. The database table is replaced on each export.
type SQLExporter struct {
	Exporter
	db    *sqlx.DB
	table string
}

func init() {

	ctx := context.Background()

	for _, scheme := range []string{"sqlite", "postgres"} {

		err := RegisterExporter(ctx, scheme, NewSQLExporter)

		if err != nil {
			panic(err)
		}
	}
}

// NewSQLExporter returns a new `SQLExporter` configured by 'uri' which is expected to take
// the form of:
//
//	sqlite:///path/to/database.db?table={NAME}
//	postgres://{USER}:{PASSWORD}@{HOST}/{DATABASE}?table={NAME}&sslmode=disable
//
// Where 'table' is optional and defaults to SQL_TABLE.
func NewSQLExporter(ctx context.Context, uri string) (Exporter, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	q := u.Query()

	table_name := SQL_TABLE

	if q.Has("table") {
		table_name = q.Get("table")
		q.Del("table")
	}

	if !re_identifier.MatchString(table_name) {
		return nil, fmt.Errorf("Invalid table name '%s'", table_name)
	}

	var driver string
	var dsn string

	switch u.Scheme {
	case "sqlite":

		dsn = derivePath(u)

		if dsn == "" {
			return nil, fmt.Errorf("Missing path")
		}

		driver = "sqlite3"

	case "postgres":

		driver = "postgres"

		u.RawQuery = q.Encode()
		dsn = u.String()

	default:
		return nil, fmt.Errorf("Unsupported scheme '%s'", u.Scheme)
	}

	db, err := sqlx.Open(driver, dsn)

	if err != nil {
		return nil, fmt.Errorf("Failed to open database, %w", err)
	}

	err = db.PingContext(ctx)

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("Failed to connect to database, %w", err)
	}

	e := &SQLExporter{
		db:    db,
		table: table_name,
	}

	return e, nil
}

func (e *SQLExporter) Export(ctx context.Context, t *table.Table) error {

	columns := t.Columns()

	if len(columns) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	defs := make([]string, len(columns))
	placeholders := make([]string, len(columns))

	for i, c := range columns {
		quoted[i] = quoteIdentifier(c)
		defs[i] = fmt.Sprintf("%s TEXT", quoted[i])
		placeholders[i] = "?"
	}

	tx, err := e.db.BeginTxx(ctx, nil)

	if err != nil {
		return err
	}

	q_drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", e.table)
	q_create := fmt.Sprintf("CREATE TABLE %s (%s)", e.table, strings.Join(defs, ", "))

	for _, q := range []string{q_drop, q_create} {

		_, err := tx.ExecContext(ctx, q)

		if err != nil {
			tx.Rollback()
			return fmt.Errorf("Failed to prepare table %s, %w", e.table, err)
		}
	}

	q_insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", e.table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	q_insert = tx.Rebind(q_insert)

	for idx := 0; idx < t.Len(); idx++ {

		str_row := t.Strings(idx)
		args := make([]any, len(columns))

		for i, c := range columns {
			args[i] = str_row[c]
		}

		_, err := tx.ExecContext(ctx, q_insert, args...)

		if err != nil {
			tx.Rollback()
			return fmt.Errorf("Failed to insert row %d, %w", idx, err)
		}
	}

	return tx.Commit()
}

func (e *SQLExporter) Close() error {
	return e.db.Close()
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
