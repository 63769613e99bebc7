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

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// Registrar godoc
// @Summary Registrar un pago
// @Description Aplica el monto mora→interés→capital en cascada desde la cuota abierta más antigua. Un sobrepago se rechaza completo.
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarPagoRequest true "Detalle del pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), &usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PagosHandler) Obtener(c *gin.Context) {
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
// @Summary Listar pagos
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param plan_pago_id query string false "UUID del plan"
// @Param cliente_id query string false "UUID del cliente"
// @Param desde query string false "Fecha YYYY-MM-DD"
// @Param hasta query string false "Fecha YYYY-MM-DD"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.PagoListResponse
// @Router /v1/pagos [get]
func (h *PagosHandler) Listar(c *gin.Context) {
	var filter dto.PagoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pagos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancelar un pago
// @Description Anula el pago y reconstruye el estado del plan reaplicando los pagos restantes en orden cronológico.
// @Tags pagos
// @Accept json
// @Security BearerAuth
// @Param id path string true "UUID del pago"
// @Param body body dto.CancelarPagoRequest true "Motivo"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos/{id} [delete]
func (h *PagosHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CancelarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
