package infra

import (
	"errors"
	"log/slog"

	"studio-booking/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// NewRepoErr builds a RepositoryError marked with the taxonomy error its kind
// maps to, so usecases can match it with errs.Is without knowing about infra.
func NewRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	repoErr := RepositoryError{Kind: kind, msg: msg, err: err}
	if mark := markFor(kind); mark != nil {
		return errs.Mark(repoErr, mark)
	}
	return repoErr
}

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Error("Repository error: "+msg, logArgs...)

	return NewRepoErr(kind, msg, err)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindSlotTaken          RepositoryErrorKind = "SLOT_TAKEN"
	KindUnavailable        RepositoryErrorKind = "UNAVAILABLE"
)

func markFor(kind RepositoryErrorKind) error {
	switch kind {
	case KindNotFound:
		return errs.ErrNotFound
	case KindSlotTaken:
		return errs.ErrSlotConflict
	case KindUnavailable:
		return errs.ErrStoreUnavailable
	default:
		return nil
	}
}
