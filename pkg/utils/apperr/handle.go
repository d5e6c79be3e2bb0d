package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs an application error through the context logger. goerr
// values are attached so structured handlers keep the error context.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	if goErr := goerr.Unwrap(err); goErr != nil {
		logger.Error("application error", "error", err, "values", goErr.Values())
		return
	}
	logger.Error("application error", "error", err)
}
