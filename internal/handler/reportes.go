package handler

import (
	"net/http"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/apierror"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Dashboard godoc
// @Summary Dashboard de inventario, ventas y cartera
// @Description Agregados globales; servidos desde caché Redis de 60 segundos.
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/reportes/dashboard [get]
func (h *ReportesHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CuotasVencidas godoc
// @Summary Reporte de cobranza
// @Description Cuotas abiertas vencidas (más allá de los días de gracia) con mora calculada al día.
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CuotasVencidasResponse
// @Router /v1/reportes/cuotas-vencidas [get]
func (h *ReportesHandler) CuotasVencidas(c *gin.Context) {
	resp, err := h.svc.CuotasVencidas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportVentas godoc
// @Summary Exportar ventas a Excel
// @Tags reportes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param desde query string false "Fecha YYYY-MM-DD"
// @Param hasta query string false "Fecha YYYY-MM-DD"
// @Param proyecto_id query string false "UUID del proyecto"
// @Success 200 {file} file
// @Router /v1/reportes/ventas/export [get]
func (h *ReportesHandler) ExportVentas(c *gin.Context) {
	var filter dto.ReporteVentasFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	data, nombre, err := h.svc.ExportVentasExcel(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar ventas"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
