// This file handles the app version check.
package handler

import (
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/service"

	"github.com/gin-gonic/gin"
)

// VersionHandler serves the version endpoint.
type VersionHandler struct {
	versionService service.VersionService
}

// NewVersionHandler creates a VersionHandler.
func NewVersionHandler(versionService service.VersionService) *VersionHandler {
	return &VersionHandler{versionService: versionService}
}

// GetAppVersion handles GET /version. The endpoint is public so
// outdated clients can learn about the update before logging in.
func (h *VersionHandler) GetAppVersion(c *gin.Context) {
	rsp, err := h.versionService.GetAppVersion()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// PublishVersion handles POST /version.
func (h *VersionHandler) PublishVersion(c *gin.Context) {
	var req request.PublishVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.versionService.PublishVersion(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}
