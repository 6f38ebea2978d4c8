package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"kitapantaups.id/api/internal/modules/master/dto"
	"kitapantaups.id/api/internal/modules/master/service"
	"kitapantaups.id/api/pkg/response"
	"kitapantaups.id/api/pkg/validator"
)

type MasterHandler struct {
	service service.MasterService
}

func NewMasterHandler(service service.MasterService) *MasterHandler {
	return &MasterHandler{service: service}
}

func (h *MasterHandler) GetStatuses(c *gin.Context) {
	rows, err := h.service.Statuses(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *MasterHandler) GetKategori(c *gin.Context) {
	rows, err := h.service.Kategori(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *MasterHandler) GetJenisTL(c *gin.Context) {
	rows, err := h.service.JenisTL(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *MasterHandler) GetKPS(c *gin.Context) {
	var filter dto.KPSFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.SearchKPS(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
