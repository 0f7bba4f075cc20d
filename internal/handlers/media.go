package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadImage receives a multipart image, stores it in the object store
// and returns the public URL for use as a tip's imageUrl.
func (h HandlerSet) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("imageUrl")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded!"})
		return
	}
	defer file.Close()

	fileURL, err := h.uploadService.UploadImage(c.Request.Context(), file, header)
	if err != nil {
		h.log.Error().Err(err).Msg("image upload failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fileUrl": fileURL})
}
