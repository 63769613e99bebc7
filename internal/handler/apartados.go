package handler

import (
	"net/http"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/apierror"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/middleware"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApartadosHandler struct{ svc service.ApartadoService }

func NewApartadosHandler(svc service.ApartadoService) *ApartadosHandler {
	return &ApartadosHandler{svc: svc}
}

// Crear godoc
// @Summary Apartar un terreno
// @Description Reserva un terreno DISPONIBLE con un depósito; expira a los 30 días si no se indica otra vigencia.
// @Tags apartados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearApartadoRequest true "Datos del apartado"
// @Success 201 {object} dto.ApartadoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/apartados [post]
func (h *ApartadosHandler) Crear(c *gin.Context) {
	var req dto.CrearApartadoRequest
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

func (h *ApartadosHandler) Obtener(c *gin.Context) {
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

func (h *ApartadosHandler) Listar(c *gin.Context) {
	var filter dto.ApartadoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar apartados"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancelar apartado
// @Description Libera el terreno de vuelta a DISPONIBLE.
// @Tags apartados
// @Accept json
// @Security BearerAuth
// @Param id path string true "UUID del apartado"
// @Param body body dto.CancelarApartadoRequest true "Motivo"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/apartados/{id} [delete]
func (h *ApartadosHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CancelarApartadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Convertir godoc
// @Summary Convertir apartado en venta
// @Description El monto del apartado se abona al enganche. Crea la venta y, si se indica plan, la tabla de amortización.
// @Tags apartados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del apartado"
// @Param body body dto.ConvertirApartadoRequest true "Términos de la venta"
// @Success 201 {object} dto.VentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/apartados/{id}/convertir [post]
func (h *ApartadosHandler) Convertir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ConvertirApartadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Convertir(c.Request.Context(), id, &usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
