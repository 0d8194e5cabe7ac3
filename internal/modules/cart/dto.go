package cart

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type RemoveItemRequest struct {
	ProductID string `json:"productId"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}
