package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RedeemCodeRequest struct {
	Code string `form:"code"`
}

func (req *RedeemCodeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(1, 64)),
	)
}

type SubmitReviewRequest struct {
	Text string `form:"text"`
}

func (req *SubmitReviewRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Text, validation.Required),
	)
}
