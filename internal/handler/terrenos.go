package handler

import (
	"net/http"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/apierror"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TerrenosHandler struct{ svc service.TerrenoService }

func NewTerrenosHandler(svc service.TerrenoService) *TerrenosHandler {
	return &TerrenosHandler{svc: svc}
}

// Crear godoc
// @Summary Dar de alta un terreno
// @Description El precio final se deriva de base, ajuste y multiplicador; actualiza los contadores del proyecto.
// @Tags terrenos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTerrenoRequest true "Datos del terreno"
// @Success 201 {object} dto.TerrenoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/terrenos [post]
func (h *TerrenosHandler) Crear(c *gin.Context) {
	var req dto.CrearTerrenoRequest
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

func (h *TerrenosHandler) Obtener(c *gin.Context) {
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
// @Summary Listar terrenos
// @Tags terrenos
// @Produce json
// @Security BearerAuth
// @Param proyecto_id query string false "UUID del proyecto"
// @Param estado query string false "DISPONIBLE | APARTADO | VENDIDO"
// @Param manzana query string false "Manzana"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.TerrenoListResponse
// @Router /v1/terrenos [get]
func (h *TerrenosHandler) Listar(c *gin.Context) {
	var filter dto.TerrenoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar terrenos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TerrenosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarTerrenoRequest
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

func (h *TerrenosHandler) Eliminar(c *gin.Context) {
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
