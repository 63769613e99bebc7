package handler

import (
	"net/http"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/apierror"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProyectosHandler struct{ svc service.ProyectoService }

func NewProyectosHandler(svc service.ProyectoService) *ProyectosHandler {
	return &ProyectosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear proyecto inmobiliario
// @Tags proyectos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProyectoRequest true "Datos del proyecto"
// @Success 201 {object} dto.ProyectoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/proyectos [post]
func (h *ProyectosHandler) Crear(c *gin.Context) {
	var req dto.CrearProyectoRequest
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
// @Summary Detalle de un proyecto con sus contadores de inventario
// @Tags proyectos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del proyecto"
// @Success 200 {object} dto.ProyectoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/proyectos/{id} [get]
func (h *ProyectosHandler) Obtener(c *gin.Context) {
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
// @Summary Listar proyectos
// @Tags proyectos
// @Produce json
// @Security BearerAuth
// @Param activo query bool false "Filtrar por activo"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.ProyectoListResponse
// @Router /v1/proyectos [get]
func (h *ProyectosHandler) Listar(c *gin.Context) {
	var filter dto.ProyectoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar proyectos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProyectosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarProyectoRequest
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

// Eliminar godoc
// @Summary Eliminar proyecto
// @Description Soft-delete. Rechazado si el proyecto tiene terrenos apartados o vendidos.
// @Tags proyectos
// @Security BearerAuth
// @Param id path string true "UUID del proyecto"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/proyectos/{id} [delete]
func (h *ProyectosHandler) Eliminar(c *gin.Context) {
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
