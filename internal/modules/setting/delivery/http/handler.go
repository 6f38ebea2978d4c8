package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"kitapantaups.id/api/internal/modules/setting/dto"
	"kitapantaups.id/api/internal/modules/setting/service"
	"kitapantaups.id/api/pkg/response"
	"kitapantaups.id/api/pkg/validator"
)

type SettingHandler struct {
	service service.SettingService
}

func NewSettingHandler(service service.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

func (h *SettingHandler) GetAll(c *gin.Context) {
	settings, err := h.service.All(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingHandler) Update(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateSettingInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
			return
		}
	}

	result, err := h.service.Set(c.Request.Context(), actor, c.Param("key"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
