package dto

type ActivityFilter struct {
	Limit   int    `form:"limit"`
	AduanID string `form:"aduan_id" binding:"omitempty,uuid"`
}

type CreateActivityInput struct {
	Type        string         `json:"type" binding:"required,max=50"`
	Description string         `json:"description"`
	AduanID     *string        `json:"aduan_id" binding:"omitempty,uuid"`
	UserName    *string        `json:"user_name" binding:"omitempty,max=100"`
	Metadata    map[string]any `json:"metadata"`
}
