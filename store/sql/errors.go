package sqlstore

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/jobdeck/jobdeck/core"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// errRowVanished marks a staged write whose target row disappeared before
// commit, usually a concurrent delete by the same owner.
func errRowVanished(id int64) error {
	return goerrors.New(
		fmt.Sprintf("sqlstore: row %d no longer exists", id),
		goerrors.CategoryNotFound,
	).
		WithCode(http.StatusNotFound).
		WithTextCode(core.ErrorCodeNotFound)
}

// classifyStoreError surfaces driver-level constraint rejections as the
// domain's ConstraintViolation kind; everything else passes through untouched.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrConstraint {
			return core.NewConstraintViolation(err, "sqlstore: constraint violation")
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 23 covers integrity constraint violations: not_null,
		// foreign_key, unique, check.
		if strings.HasPrefix(string(pqErr.Code), "23") {
			return core.NewConstraintViolation(err, "sqlstore: constraint violation")
		}
		return err
	}

	return err
}
