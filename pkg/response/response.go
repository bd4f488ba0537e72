package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"SafeCall/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
	Meta  Meta        `json:"meta"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// Meta 表示统一响应中的元数据。
type Meta struct {
	RequestID       string `json:"request_id,omitempty"`
	CompatibleSince string `json:"compatible_since,omitempty"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// StatusFor 根据错误码映射 HTTP 状态码
func StatusFor(err error) int {
	def, ok := errors.AsDefinition(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case errors.RateLimited.Code:
		return http.StatusTooManyRequests // 429
	case errors.InvalidRequest.Code, errors.ValidationFailed.Code,
		errors.ContactDraftInvalid.Code:
		return http.StatusBadRequest // 400
	case errors.ContactNotFound.Code, errors.DispatchTargetUnknown.Code:
		return http.StatusNotFound // 404
	case errors.DispatchPending.Code, errors.SignUpInProgress.Code:
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}

func meta(c *app.RequestContext) Meta {
	return Meta{
		RequestID:       c.GetString("request_id"),
		CompatibleSince: "v1",
	}
}

// Error 返回错误响应，FieldErrors 会把字段错误放进 details
func Error(ctx context.Context, c *app.RequestContext, err error) {
	var details map[string]interface{}
	if fe, ok := errors.AsFieldErrors(err); ok && !fe.Empty() {
		details = make(map[string]interface{}, len(fe.Fields))
		for field, msg := range fe.Fields {
			details[field] = msg
		}
	}
	ErrorWithDetails(ctx, c, err, details)
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := StatusFor(err)

	var code, message string
	if def, ok := errors.AsDefinition(err); ok {
		code = def.Code
		message = def.Message
	} else {
		code = errors.InternalError.Code
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// Accepted 返回 202，用于尚未完成的模拟呼叫
func Accepted(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusAccepted, SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

func Created(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    errors.InvalidRequest.Code,
			Message: err.Error(),
		},
		Meta: meta(c),
	})
}

// NoContent 返回 204 No Content（用于 DELETE 等操作）
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
