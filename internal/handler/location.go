package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SafeCall/pkg/response"
)

// GetLocation 当前定位状态，首次访问时触发定位请求
// GET /v1/location
func (h *Handlers) GetLocation(ctx context.Context, c *app.RequestContext) {
	h.location.Start(ctx)
	response.Success(ctx, c, h.location.Status())
}
