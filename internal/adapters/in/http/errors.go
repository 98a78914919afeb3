package http

import (
	"context"
	"errors"
	"net/http"

	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var kinds = []struct {
	err    error
	status int
	kind   string
}{
	{errs.ErrObjectNotFound, http.StatusNotFound, "NotFound"},
	{errs.ErrNoSuchBid, http.StatusNotFound, "NoSuchBid"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "ValueIsRequired"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "ValueIsOutOfRange"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "ValueIsInvalid"},
	{errs.ErrInsufficientFunds, http.StatusPaymentRequired, "InsufficientFunds"},
	{errs.ErrUnauthorized, http.StatusForbidden, "Unauthorized"},
	{errs.ErrBlacklisted, http.StatusForbidden, "Blacklisted"},
	{errs.ErrInvalidTransition, http.StatusConflict, "InvalidTransition"},
	{errs.ErrOrderNotBiddable, http.StatusConflict, "OrderNotBiddable"},
	{errs.ErrAlreadyAdjudicated, http.StatusConflict, "AlreadyAdjudicated"},
	{errs.ErrAlreadyRated, http.StatusConflict, "AlreadyRated"},
	{errs.ErrAlreadyFiled, http.StatusConflict, "AlreadyFiled"},
	{errs.ErrStorageFailure, http.StatusInternalServerError, "StorageFailure"},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, "LockTimeout"},
}

// fail writes the error kind of err as an HTTP status. Unclassified errors
// become 500 without leaking their message.
func fail(c echo.Context, err error) error {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			if k.status >= http.StatusInternalServerError {
				c.Logger().Error(err)
			}
			return c.JSON(k.status, Error{Code: k.status, Kind: k.kind, Message: err.Error()})
		}
	}

	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Kind:    "Internal",
		Message: "internal error",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Kind: "BadRequest", Message: message})
}
