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

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Crear godoc
// @Summary Registrar una venta
// @Description Crea la venta ACID: bloquea el terreno, lo marca VENDIDO y, si se financia, genera el plan con su tabla de amortización.
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearVentaRequest true "Detalle de la venta"
// @Success 201 {object} dto.VentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/ventas [post]
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Crear(c.Request.Context(), &usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) Obtener(c *gin.Context) {
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

// Listar godoc
// @Summary Listar ventas
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param proyecto_id query string false "UUID del proyecto"
// @Param cliente_id query string false "UUID del cliente"
// @Param estado query string false "PENDIENTE | PAGADA | CANCELADA | ANULADA"
// @Param desde query string false "Fecha YYYY-MM-DD"
// @Param hasta query string false "Fecha YYYY-MM-DD"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.VentaListResponse
// @Router /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancelar venta
// @Description Desactiva el plan y regresa el terreno a DISPONIBLE. Rechazada si el plan ya cobró pagos.
// @Tags ventas
// @Accept json
// @Security BearerAuth
// @Param id path string true "UUID de la venta"
// @Param body body dto.CancelarVentaRequest true "Motivo"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/ventas/{id} [delete]
func (h *VentasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CancelarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
