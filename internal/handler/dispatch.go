package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SafeCall/internal/model/dto"
	"SafeCall/internal/service"
	"SafeCall/pkg/response"
)

// ListServices 固定的公共服务号码
// GET /v1/services
func (h *Handlers) ListServices(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, service.ServiceTargets())
}

// CreateCall 在指定入口发起模拟呼叫，返回 pending 状态的呼叫
// POST /v1/surfaces/:surface/calls
func (h *Handlers) CreateCall(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateCallRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	dispatch, err := h.dispatcher.Call(ctx, c.Param("surface"), service.TargetRequest{
		Service:   req.Service,
		ContactID: req.ContactID,
	})
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Accepted(ctx, c, dispatch)
}

// GetSurface 入口状态：是否有进行中的呼叫，以及最近一次完成的提示
// GET /v1/surfaces/:surface
func (h *Handlers) GetSurface(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, h.dispatcher.Surface(c.Param("surface")).Status())
}
