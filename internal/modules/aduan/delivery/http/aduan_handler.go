package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"kitapantaups.id/api/internal/modules/aduan/dto"
	"kitapantaups.id/api/internal/modules/aduan/service"
	commonDto "kitapantaups.id/api/pkg/dto"
	"kitapantaups.id/api/pkg/response"
	"kitapantaups.id/api/pkg/validator"
)

type AduanHandler struct {
	service service.AduanService
}

func NewAduanHandler(service service.AduanService) *AduanHandler {
	return &AduanHandler{service: service}
}

func (h *AduanHandler) GetAll(c *gin.Context) {
	var filter dto.AduanFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AduanHandler) GetProvinces(c *gin.Context) {
	provinces, err := h.service.Provinces(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, provinces)
}

func (h *AduanHandler) GetByID(c *gin.Context) {
	detail, err := h.service.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *AduanHandler) Create(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateAduanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	aduan, err := h.service.Create(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, aduan)
}

func (h *AduanHandler) Update(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateAduanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	aduan, err := h.service.Update(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, aduan)
}

func (h *AduanHandler) Delete(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.MessageResponse{Message: "Aduan berhasil dihapus"})
}
