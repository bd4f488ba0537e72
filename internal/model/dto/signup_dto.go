package dto

import "SafeCall/internal/form"

// ========== SignUp 相关 DTO ==========

type SignUpRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SignUpValidation 校验结果，Values 原样回传，密码除外
type SignUpValidation struct {
	Values    map[string]string `json:"values"`
	Errors    map[string]string `json:"errors"`
	CanSubmit bool              `json:"can_submit"`
}

func (r SignUpRequest) Values() form.Values {
	return form.Values{
		form.FieldFullName:        r.FullName,
		form.FieldEmail:           r.Email,
		form.FieldPhone:           r.Phone,
		form.FieldPassword:        r.Password,
		form.FieldConfirmPassword: r.ConfirmPassword,
	}
}

func NewSignUpValidation(d *form.Draft) SignUpValidation {
	values := d.Values()
	delete(values, form.FieldPassword)
	delete(values, form.FieldConfirmPassword)

	return SignUpValidation{
		Values:    values,
		Errors:    d.Errors(),
		CanSubmit: d.CanSubmit(),
	}
}
