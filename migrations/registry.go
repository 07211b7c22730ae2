package migrations

import (
	"context"
	"fmt"
	"io/fs"

	jobdeck "github.com/jobdeck/jobdeck"
)

// The postgres migration files sit at the embedded tree's root; the sqlite
// variants live in the sqlite/ subdirectory.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// RegisterFunc receives one dialect's migration filesystem.
type RegisterFunc func(ctx context.Context, dialect string, fsys fs.FS) error

// Filesystems resolves the embedded migration tree into one filesystem per
// dialect and checks each carries at least one up migration.
func Filesystems() (map[string]fs.FS, error) {
	base, err := fs.Sub(jobdeck.GetCoreMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve migration root: %w", err)
	}
	sqliteFS, err := fs.Sub(base, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve sqlite filesystem: %w", err)
	}

	filesystems := map[string]fs.FS{
		DialectPostgres: base,
		DialectSQLite:   sqliteFS,
	}
	for dialect, fsys := range filesystems {
		matches, globErr := fs.Glob(fsys, "*.up.sql")
		if globErr != nil {
			return nil, fmt.Errorf("migrations: glob %s migrations: %w", dialect, globErr)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("migrations: %s filesystem has no *.up.sql files", dialect)
		}
	}
	return filesystems, nil
}

// Register hands each requested dialect's filesystem to registerFn. With no
// dialects it registers both.
func Register(ctx context.Context, registerFn RegisterFunc, dialects ...string) error {
	if registerFn == nil {
		return fmt.Errorf("migrations: register function is required")
	}
	filesystems, err := Filesystems()
	if err != nil {
		return err
	}
	if len(dialects) == 0 {
		dialects = []string{DialectPostgres, DialectSQLite}
	}
	for _, dialect := range dialects {
		fsys, ok := filesystems[dialect]
		if !ok {
			return fmt.Errorf("migrations: unknown dialect %q", dialect)
		}
		if err := registerFn(ctx, dialect, fsys); err != nil {
			return fmt.Errorf("migrations: register %s: %w", dialect, err)
		}
	}
	return nil
}
