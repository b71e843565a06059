package handler

import (
	"github.com/gin-gonic/gin"
	settingapp "github.com/sellaids/backend/internal/application/setting"
)

// SettingHandler serves the admin settings groups
type SettingHandler struct {
	BaseHandler
	settingService *settingapp.SettingService
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(settingService *settingapp.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetAll godoc
// @Summary      All settings
// @Description  Every group merged with its defaults
// @Tags         admin-settings
// @Produce      json
// @Success      200 {object} dto.Response{data=[]settingapp.GroupResponse}
// @Security     BearerAuth
// @Router       /admin/settings [get]
func (h *SettingHandler) GetAll(c *gin.Context) {
	groups, err := h.settingService.GetAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// GetGroup godoc
// @Summary      Settings group
// @Tags         admin-settings
// @Produce      json
// @Param        group path string true "Group name"
// @Success      200 {object} dto.Response{data=settingapp.GroupResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/settings/{group} [get]
func (h *SettingHandler) GetGroup(c *gin.Context) {
	group, err := h.settingService.GetGroup(c.Request.Context(), c.Param("group"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}

// UpdateGroup godoc
// @Summary      Update settings group
// @Description  Unknown keys are rejected
// @Tags         admin-settings
// @Accept       json
// @Produce      json
// @Param        group path string true "Group name"
// @Param        request body settingapp.UpdateSettingsInput true "Values"
// @Success      200 {object} dto.Response{data=settingapp.GroupResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/settings/{group} [put]
func (h *SettingHandler) UpdateGroup(c *gin.Context) {
	var req settingapp.UpdateSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	group, err := h.settingService.UpdateGroup(c.Request.Context(), c.Param("group"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}
