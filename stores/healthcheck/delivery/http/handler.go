package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openxmarket/goapi/base/ctx"
	hcdomain "github.com/openxmarket/goapi/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	e.GET("/healthcheck", handler.check)
}

// check
//
//	@Summary		Healthcheck
//	@Description	Probe the backing stores
//	@Tags			healthcheck
//	@Produce		json
//	@Success		200	{object}	object{healthy=string}
//	@Failure		500
//	@Router			/healthcheck [get]
func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(context); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"healthy": "ok",
	})
}
