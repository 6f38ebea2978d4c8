package dto

type CreateUserInput struct {
	Email       string  `json:"email" binding:"required,email,max=100"`
	Password    string  `json:"password" binding:"required,min=8"`
	DisplayName string  `json:"display_name" binding:"required,max=100"`
	Role        string  `json:"role" binding:"required,oneof=admin staf"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
}

type UpdateUserInput struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=100"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin staf"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	IsActive    *bool   `json:"is_active"`
	Password    *string `json:"password" binding:"omitempty,min=8"`
}
