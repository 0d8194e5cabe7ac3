package catalog

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Category    string  `json:"category" validate:"required,max=100"`
}
