package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/service"
)

// ParameterHandler handles lookup-table HTTP requests
type ParameterHandler struct {
	parameterService *service.ParameterService
}

// NewParameterHandler creates a new ParameterHandler
func NewParameterHandler(parameterService *service.ParameterService) *ParameterHandler {
	return &ParameterHandler{parameterService: parameterService}
}

// GetParameters godoc
// @Summary List parameters
// @Description Lookup-table rows, optionally filtered by type
// @Tags parameters
// @Produce json
// @Security BearerAuth
// @Param type query string false "Parameter type (estadoEstudio, tipoPersona, ...)"
// @Param search query string false "Label search"
// @Param onlyActive query bool false "Only active rows"
// @Success 200 {array} domain.Parameter
// @Failure 500 {object} ProblemDetails
// @Router /parameters [get]
func (h *ParameterHandler) GetParameters(c echo.Context) error {
	filters := &domain.ParameterFilters{
		Type:   c.QueryParam("type"),
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("onlyActive"); raw != "" {
		onlyActive, err := strconv.ParseBool(raw)
		if err != nil {
			return NewValidationError(c, "Invalid query parameters", []ValidationError{
				{Field: "onlyActive", Message: "Must be a boolean"},
			})
		}
		filters.OnlyActive = onlyActive
	}

	parameters, err := h.parameterService.List(filters)
	if err != nil {
		log.Error().Err(err).Str("type", filters.Type).Msg("Failed to list parameters")
		return NewInternalError(c, "Failed to list parameters")
	}

	return c.JSON(http.StatusOK, parameters)
}

// GetParameter handles GET /api/v1/parameters/:id
func (h *ParameterHandler) GetParameter(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid parameter ID", nil)
	}

	parameter, err := h.parameterService.GetByID(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrParameterNotFound) {
			return NewNotFoundError(c, "Parameter not found")
		}
		log.Error().Err(err).Int64("parameter_id", id).Msg("Failed to get parameter")
		return NewInternalError(c, "Failed to get parameter")
	}

	return c.JSON(http.StatusOK, parameter)
}
