package api

import (
	"errors"
	"net/http"

	domrepo "StockSense/internal/domain/repository"
	domsvc "StockSense/internal/domain/service"
	xhttp "StockSense/pkg/http"
	xlogger "StockSense/pkg/logger"

	"github.com/labstack/echo/v4"
)

// toAppError maps domain sentinels onto HTTP errors; anything else stays a 500.
func toAppError(err error) error {
	switch {
	case errors.Is(err, domsvc.ErrDataUnavailable):
		return xhttp.NotFoundError("No data available for symbol").WithError(err)
	case errors.Is(err, domsvc.ErrInsufficientHistory):
		return xhttp.NotFoundError("Not enough history to predict").WithError(err)
	case errors.Is(err, domrepo.ErrNotFound):
		return xhttp.NotFoundError("Record not found").WithError(err)
	}
	return err
}

func errorResponse(c echo.Context, l *xlogger.Logger, op string, err error) error {
	mapped := toAppError(err)
	var appErr *xhttp.AppError
	if errors.As(mapped, &appErr) && appErr.Status < http.StatusInternalServerError {
		l.Debug(op+" rejected", xlogger.Error(err))
	} else {
		l.Error(op+" usecase error", xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, mapped)
}
