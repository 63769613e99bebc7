package handler

import (
	"net/http"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/apierror"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanesPagoHandler struct{ svc service.PlanPagoService }

func NewPlanesPagoHandler(svc service.PlanPagoService) *PlanesPagoHandler {
	return &PlanesPagoHandler{svc: svc}
}

// Crear godoc
// @Summary Crear un plan de pago para una venta sin financiamiento
// @Description Genera el plan y su tabla completa en una sola transacción.
// @Tags planes-pago
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPlanPagoRequest true "Venta y términos"
// @Success 201 {object} dto.PlanPagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/planes-pago [post]
func (h *PlanesPagoHandler) Crear(c *gin.Context) {
	var req dto.CrearPlanPagoRequest
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

// Obtener godoc
// @Summary Detalle de un plan de pago con su tabla de amortización
// @Tags planes-pago
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del plan"
// @Success 200 {object} dto.PlanPagoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/planes-pago/{id} [get]
func (h *PlanesPagoHandler) Obtener(c *gin.Context) {
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

func (h *PlanesPagoHandler) ObtenerPorVenta(c *gin.Context) {
	ventaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorVenta(c.Request.Context(), ventaID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Listar planes de pago
// @Tags planes-pago
// @Produce json
// @Security BearerAuth
// @Param cliente_id query string false "UUID del cliente"
// @Param con_vencidas query bool false "Solo planes con cuotas vencidas"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.PlanPagoListResponse
// @Router /v1/planes-pago [get]
func (h *PlanesPagoHandler) Listar(c *gin.Context) {
	var filter dto.PlanPagoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar planes de pago"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Amortizaciones godoc
// @Summary Tabla de amortización con totales por columna
// @Tags planes-pago
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del plan"
// @Success 200 {object} dto.TablaAmortizacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/planes-pago/{id}/amortizaciones [get]
func (h *PlanesPagoHandler) Amortizaciones(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Tabla(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Ajustar tasa de mora, días de gracia o notas
// @Description Los términos financieros (monto, tasa, número de pagos) son inmutables.
// @Tags planes-pago
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del plan"
// @Param body body dto.ActualizarPlanPagoRequest true "Campos ajustables"
// @Success 200 {object} dto.PlanPagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/planes-pago/{id} [put]
func (h *PlanesPagoHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPlanPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstadoCuenta godoc
// @Summary Estado de cuenta del plan
// @Description Tabla completa con mora viva, pagos aplicados y próxima cuota.
// @Tags planes-pago
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del plan"
// @Success 200 {object} dto.EstadoCuentaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/planes-pago/{id}/estado-cuenta [get]
func (h *PlanesPagoHandler) EstadoCuenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.EstadoCuenta(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstadoCuentaPDF godoc
// @Summary Descargar el estado de cuenta en PDF
// @Tags planes-pago
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "UUID del plan"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /v1/planes-pago/{id}/estado-cuenta/pdf [get]
func (h *PlanesPagoHandler) EstadoCuentaPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, err := h.svc.EstadoCuentaPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "estado_cuenta.pdf")
}

// Condonar godoc
// @Summary Condonar una amortización
// @Description Perdona el saldo restante de la cuota; lo ya pagado se conserva.
// @Tags planes-pago
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la amortización"
// @Param body body dto.CondonarAmortizacionRequest true "Motivo"
// @Success 200 {object} dto.AmortizacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/amortizaciones/{id}/condonar [post]
func (h *PlanesPagoHandler) Condonar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CondonarAmortizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Condonar(c.Request.Context(), id, req.Motivo)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanesPagoHandler) Eliminar(c *gin.Context) {
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
