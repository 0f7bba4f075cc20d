package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"barriotips/api/internal/ids"
	"barriotips/api/internal/models"
	"barriotips/api/internal/repository"
)

type barrioRequest struct {
	BarrioName string `json:"barrioName"`
	MapPolygon string `json:"mapPolygon"`
}

type barrioResponse struct {
	ID         string `json:"_id"`
	BarrioName string `json:"barrioName"`
	MapPolygon string `json:"mapPolygon"`
}

func newBarrioResponse(barrio models.Barrio) barrioResponse {
	return barrioResponse{
		ID:         barrio.ID,
		BarrioName: barrio.BarrioName,
		MapPolygon: barrio.MapPolygon,
	}
}

func (h HandlerSet) CreateBarrio(c *gin.Context) {
	var req barrioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BarrioName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a barrio name."})
		return
	}

	barrio := models.Barrio{
		ID:         ids.New(),
		BarrioName: req.BarrioName,
		MapPolygon: req.MapPolygon,
	}
	if err := h.barrios.Create(c.Request.Context(), barrio); err != nil {
		h.barrioError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newBarrioResponse(barrio))
}

func (h HandlerSet) ListBarrios(c *gin.Context) {
	barrios, err := h.barrios.List(c.Request.Context())
	if err != nil {
		h.barrioError(c, err)
		return
	}

	resp := make([]barrioResponse, 0, len(barrios))
	for _, barrio := range barrios {
		resp = append(resp, newBarrioResponse(barrio))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetBarrio(c *gin.Context) {
	barrio, err := h.barrios.GetByID(c.Request.Context(), c.Param("barrioId"))
	if err != nil {
		h.barrioError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBarrioResponse(barrio))
}

func (h HandlerSet) UpdateBarrio(c *gin.Context) {
	var req barrioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	barrio := models.Barrio{
		ID:         c.Param("barrioId"),
		BarrioName: req.BarrioName,
		MapPolygon: req.MapPolygon,
	}
	if err := h.barrios.Update(c.Request.Context(), barrio); err != nil {
		h.barrioError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBarrioResponse(barrio))
}

func (h HandlerSet) DeleteBarrio(c *gin.Context) {
	if err := h.barrios.Delete(c.Request.Context(), c.Param("barrioId")); err != nil {
		h.barrioError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) barrioError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrBarrioNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barrio not found."})
		return
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("barrio operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
}
