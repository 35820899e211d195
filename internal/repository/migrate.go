package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all *.sql files under migrations/ in lexicographic order.
// Statements are split on ";" and run one at a time because the MySQL driver
// does not execute multi-statement scripts by default. Migrations are written
// to be idempotent (CREATE TABLE IF NOT EXISTS etc).
//
// 0002 adds the optional registrations.status column; environments that skip
// it still work, the status probe downgrades queries at runtime.
func Migrate(ctx context.Context, db *sql.DB) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return err
		}
		for _, stmt := range splitStatements(string(script)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil && !isAlreadyAppliedErr(err) {
				return fmt.Errorf("migration %s failed: %w", name, err)
			}
		}
	}

	return nil
}

// isAlreadyAppliedErr reports whether a statement failed only because a
// previous run already applied it (duplicate column 1060, duplicate key 1061).
func isAlreadyAppliedErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1060 || mysqlErr.Number == 1061
	}
	return false
}

func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
