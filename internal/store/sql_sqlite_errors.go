package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err originates from a SQLite UNIQUE or
// PRIMARY KEY constraint failure. Repository methods use it to translate
// driver-level errors into domain sentinels such as
// [ErrUsernameAlreadyExists].
//
// See https://www.sqlite.org/rescode.html for the extended result codes.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// isConstraintViolation reports whether err is any SQLite constraint failure
// (CHECK, NOT NULL, FOREIGN KEY, UNIQUE). Used to classify write errors that
// should never be retried.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.Code == sqlite3.ErrConstraint
}
