package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStoreUnavailable matches store errors caused by a lost or unreachable
// database rather than by the statement itself.
var ErrStoreUnavailable = errors.New("booking store unavailable")

// StoreError wraps a failed persistence call.
type StoreError struct {
	Op          string
	Err         error
	Unavailable bool
}

func (e *StoreError) Error() string {
	if e.Unavailable {
		return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable && e.Unavailable
}

// ClassifyStoreError wraps err in a *StoreError, flagging connection-level
// failures. A nil err stays nil.
func ClassifyStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err, Unavailable: isConnectionError(err)}
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
