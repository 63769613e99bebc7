package handler

import (
	"net/http"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/apierror"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CotizacionesHandler struct{ svc service.CotizacionService }

func NewCotizacionesHandler(svc service.CotizacionService) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc}
}

// Crear godoc
// @Summary Crear cotización
// @Description Congela el precio de lista del terreno y aplica descuentos; vigencia default de 15 días.
// @Tags cotizaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCotizacionRequest true "Datos de la cotización"
// @Success 201 {object} dto.CotizacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cotizaciones [post]
func (h *CotizacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) Listar(c *gin.Context) {
	var filter dto.CotizacionFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cotizaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
