package dto

import commonDto "kitapantaups.id/api/pkg/dto"

type KPSFilter struct {
	Search string `form:"search"`
	commonDto.Pagination
}
