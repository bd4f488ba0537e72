package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SafeCall/internal/model/dto"
	"SafeCall/pkg/errors"
	"SafeCall/pkg/response"
)

// ValidateSignUp 校验注册表单，所有字段的错误一次性返回
// POST /v1/signup/validate
func (h *Handlers) ValidateSignUp(ctx context.Context, c *app.RequestContext) {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	draft, err := h.signUp.Validate(req.Values())
	if err != nil {
		if _, ok := errors.AsFieldErrors(err); !ok {
			response.Error(ctx, c, err)
			return
		}
	}

	response.Success(ctx, c, dto.NewSignUpValidation(draft))
}

// SignUp 模拟创建账号
// POST /v1/signup
func (h *Handlers) SignUp(ctx context.Context, c *app.RequestContext) {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := h.signUp.Submit(ctx, req.Values())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}
