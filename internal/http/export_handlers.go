package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createExport(c *gin.Context) {
	export, err := h.exports.Export(c.Request.Context(), principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"export": exportToResponse(*export)})
}

func (h *Handler) listExports(c *gin.Context) {
	exports, err := h.exports.ListExports(c.Request.Context(), principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ExportResponse, len(exports))
	for i := range exports {
		resp[i] = exportToResponse(exports[i])
	}
	c.JSON(http.StatusOK, gin.H{"exports": resp})
}
