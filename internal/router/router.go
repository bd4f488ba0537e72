package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"SafeCall/internal/handler"
	"SafeCall/internal/middleware"
)

func Register(h *server.Hertz, hs *handler.Handlers) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.MetricsMiddleware())

	v1 := h.Group("/v1")

	// 紧急联系人
	contacts := v1.Group("/contacts")
	{
		contacts.GET("", hs.ListContacts)
		contacts.POST("", hs.CreateContact)
		contacts.DELETE("/:contact_id", hs.DeleteContact)
	}

	// 固定服务号码
	v1.GET("/services", hs.ListServices)

	// 呼叫入口
	surfaces := v1.Group("/surfaces")
	{
		surfaces.GET("/:surface", hs.GetSurface)
		surfaces.POST("/:surface/calls", middleware.CallRateLimitMiddleware(), hs.CreateCall)
	}

	v1.GET("/location", hs.GetLocation)

	// 注册
	signup := v1.Group("/signup")
	{
		signup.POST("", hs.SignUp)
		signup.POST("/validate", hs.ValidateSignUp)
	}
}
