package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/lib/pq"

	"github.com/ourlittleplanet/planet-service/internal/domain"
)

// uniqueViolation is the postgres error code for a unique constraint
// violation. Losing a create race surfaces as this code and must be
// reported the same way as the pre-insert duplicate check.
const uniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return constraint == "" || strings.Contains(pqErr.Constraint, constraint)
	}
	return false
}

// translateInfra maps connection acquisition and timeout faults to the
// retryable SERVICE_UNAVAILABLE outcome so they are never mistaken for
// validation or not-found results.
func translateInfra(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return domain.ErrServiceUnavailable
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrServiceUnavailable
	}
	return err
}
