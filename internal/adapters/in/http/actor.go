package http

import (
	"net/http"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	ActorHeader = "X-Actor-ID"
	actorKey    = "actor"
)

// requireActor parses the caller id from ActorHeader into the echo context.
func requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(ActorHeader)
		if raw == "" {
			return c.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Kind:    "MissingActor",
				Message: ActorHeader + " header is required",
			})
		}
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(c, "invalid "+ActorHeader+": "+err.Error())
		}
		c.Set(actorKey, id)
		return next(c)
	}
}

func actor(c echo.Context) kernel.UUID {
	id, _ := c.Get(actorKey).(kernel.UUID)
	return id
}

// pathID parses the :id route parameter. The returned error is an
// *echo.HTTPError ready to be returned from the handler.
func pathID(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid id: "+err.Error())
	}
	return id, nil
}
