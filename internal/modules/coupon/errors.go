package coupon

import "errors"

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExpired  = errors.New("coupon has expired")
)
