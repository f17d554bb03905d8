package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/medispatch/medispatch/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the delivery routes. Every route, reads included,
// goes through the bearer-token gate.
func (h *Handler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/deliveries", requireAuth)
	g.GET("/", h.ListDeliveries)
	g.GET("/:id", h.GetDelivery)
	g.POST("/", h.CreateDelivery)
	g.PUT("/:id", h.UpdateDelivery)
	g.DELETE("/:id", h.DeleteDelivery)
}

func (h *Handler) CreateDelivery(c echo.Context) error {
	var d Delivery
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err := h.svc.CreateDelivery(c.Request().Context(), &d); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) GetDelivery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDelivery(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDeliveries(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, err := h.svc.ListDeliveries(c.Request().Context(), f, pg.Limit, pg.Skip)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateDelivery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch Patch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	d, err := h.svc.UpdateDelivery(c.Request().Context(), id, patch)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDelivery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDelivery(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("delivery %d deleted", id),
	})
}

// filterFromQuery parses the exact-match list filters from query params.
func filterFromQuery(c echo.Context) (Filter, error) {
	var f Filter

	if v := c.QueryParam("patient_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid patient_id")
		}
		f.PatientID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		s := Status(v)
		if err := validation.Validate(s, validation.In(statuses...)); err != nil {
			return f, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid status")
		}
		f.Status = &s
	}

	for param, dst := range map[string]**time.Time{
		"emission_date_from": &f.EmissionFrom,
		"emission_date_to":   &f.EmissionTo,
		"delivery_date_from": &f.DeliveryFrom,
		"delivery_date_to":   &f.DeliveryTo,
	} {
		v := c.QueryParam(param)
		if v == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid "+param)
		}
		*dst = &ts
	}

	return f, nil
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid id")
	}
	return id, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrPatientMissing):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ErrPatientMissing.Error())
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, verrs)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
