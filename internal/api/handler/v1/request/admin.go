package request

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	errWeakPassword            = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

// drinkChoices mirrors the options offered by the dashboard form.
var drinkChoices = func() []interface{} {
	choices := make([]interface{}, 0, 10)
	for i := 1; i <= 10; i++ {
		choices = append(choices, fmt.Sprintf("energetik%v", i))
	}

	return choices
}()

type AdminLoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (req *AdminLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

type GenerateCodeRequest struct {
	Username string `form:"username"`
	Drink    string `form:"drink"`
}

func (req *GenerateCodeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Drink, validation.Required, validation.In(drinkChoices...)),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password"`
	NewPassword     string `form:"new_password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (req *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	// Lookahead groups need regexp2; the stdlib engine doesn't support them.
	passwordExp := regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	matched, err := passwordExp.MatchString(req.NewPassword)
	if err != nil {
		return err
	}
	if !matched {
		return errWeakPassword
	}

	if req.NewPassword != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}
