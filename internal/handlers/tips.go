package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"barriotips/api/internal/middleware"
	"barriotips/api/internal/models"
	"barriotips/api/internal/repository"
)

type tipRequest struct {
	Title         string   `json:"title"`
	IntroText     string   `json:"introText"`
	BodyText      string   `json:"bodyText"`
	ImageURL      string   `json:"imageUrl"`
	Street        string   `json:"street"`
	StreetNo      string   `json:"streetNo"`
	Zip           string   `json:"zip"`
	City          string   `json:"city"`
	Telephone     string   `json:"telephone"`
	MapPlaceID    *string  `json:"mapPlaceId"`
	GoogleMapsURI string   `json:"googleMapsUri"`
	MapLat        *float64 `json:"mapLat"`
	MapLng        *float64 `json:"mapLng"`
	CategoryID    *string  `json:"category"`
	BarrioID      *string  `json:"barrio"`
}

type tipResponse struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	IntroText     string   `json:"introText"`
	BodyText      string   `json:"bodyText"`
	ImageURL      string   `json:"imageUrl"`
	Street        string   `json:"street"`
	StreetNo      string   `json:"streetNo"`
	Zip           string   `json:"zip"`
	City          string   `json:"city"`
	Telephone     string   `json:"telephone"`
	MapPlaceID    *string  `json:"mapPlaceId"`
	GoogleMapsURI string   `json:"googleMapsUri"`
	MapLat        *float64 `json:"mapLat"`
	MapLng        *float64 `json:"mapLng"`
	CategoryID    *string  `json:"category"`
	BarrioID      *string  `json:"barrio"`
	AuthorID      *string  `json:"author"`
}

func newTipResponse(tip models.Tip) tipResponse {
	return tipResponse{
		ID:            tip.ID,
		Title:         tip.Title,
		IntroText:     tip.IntroText,
		BodyText:      tip.BodyText,
		ImageURL:      tip.ImageURL,
		Street:        tip.Street,
		StreetNo:      tip.StreetNo,
		Zip:           tip.Zip,
		City:          tip.City,
		Telephone:     tip.Telephone,
		MapPlaceID:    tip.MapPlaceID,
		GoogleMapsURI: tip.GoogleMapsURI,
		MapLat:        tip.MapLat,
		MapLng:        tip.MapLng,
		CategoryID:    tip.CategoryID,
		BarrioID:      tip.BarrioID,
		AuthorID:      tip.AuthorID,
	}
}

func newTipListResponse(tips []models.Tip) []tipResponse {
	resp := make([]tipResponse, 0, len(tips))
	for _, tip := range tips {
		resp = append(resp, newTipResponse(tip))
	}
	return resp
}

func (req tipRequest) toModel() models.Tip {
	return models.Tip{
		Title:         req.Title,
		IntroText:     req.IntroText,
		BodyText:      req.BodyText,
		ImageURL:      req.ImageURL,
		Street:        req.Street,
		StreetNo:      req.StreetNo,
		Zip:           req.Zip,
		City:          req.City,
		Telephone:     req.Telephone,
		MapPlaceID:    req.MapPlaceID,
		GoogleMapsURI: req.GoogleMapsURI,
		MapLat:        req.MapLat,
		MapLng:        req.MapLng,
		CategoryID:    req.CategoryID,
		BarrioID:      req.BarrioID,
	}
}

func (h HandlerSet) CreateTip(c *gin.Context) {
	var req tipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" || req.IntroText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a title and intro text."})
		return
	}

	tip := req.toModel()
	if user, ok := middleware.UserFrom(c); ok {
		tip.AuthorID = &user.ID
	}

	created, err := h.tipService.Create(c.Request.Context(), tip)
	if err != nil {
		h.tipError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTipResponse(created))
}

// ListTips supports comma-separated multi-value category and barrio
// filters, e.g. /tips?category=a,b&barrio=c.
func (h HandlerSet) ListTips(c *gin.Context) {
	filter := repository.TipFilter{}
	if category := c.Query("category"); category != "" {
		filter.CategoryIDs = strings.Split(category, ",")
	}
	if barrio := c.Query("barrio"); barrio != "" {
		filter.BarrioIDs = strings.Split(barrio, ",")
	}

	tips, err := h.tipService.List(c.Request.Context(), filter)
	if err != nil {
		h.tipError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTipListResponse(tips))
}

func (h HandlerSet) GetTip(c *gin.Context) {
	tip, err := h.tipService.GetByID(c.Request.Context(), c.Param("tipId"))
	if err != nil {
		h.tipError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTipResponse(tip))
}

func (h HandlerSet) UpdateTip(c *gin.Context) {
	var req tipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tip := req.toModel()
	tip.ID = c.Param("tipId")

	updated, err := h.tipService.Update(c.Request.Context(), tip)
	if err != nil {
		h.tipError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTipResponse(updated))
}

func (h HandlerSet) DeleteTip(c *gin.Context) {
	if err := h.tipService.Delete(c.Request.Context(), c.Param("tipId")); err != nil {
		h.tipError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) tipError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrTipNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tip not found."})
		return
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("tip operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
}
