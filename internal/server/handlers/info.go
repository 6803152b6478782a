package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type InfoHandler struct {
	info ServiceInfoResponse
}

func NewInfoHandler(service, version string) *InfoHandler {
	return &InfoHandler{
		info: ServiceInfoResponse{
			Service: service,
			Status:  "operational",
			Version: version,
		},
	}
}

func (h *InfoHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.info)
}
