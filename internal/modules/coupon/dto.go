package coupon

type ValidateRequest struct {
	Code string `json:"code" validate:"required"`
}

type ValidateResponse struct {
	Message            string `json:"message"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discountPercentage"`
}
