package handler

import (
	"SafeCall/internal/service"
)

// Handlers 持有一个会话的全部状态，路由注册时绑定到各个方法
type Handlers struct {
	contacts   *service.ContactStore
	dispatcher *service.Dispatcher
	location   *service.LocationTracker
	signUp     *service.SignUpService
}

func New(
	contacts *service.ContactStore,
	dispatcher *service.Dispatcher,
	location *service.LocationTracker,
	signUp *service.SignUpService,
) *Handlers {
	return &Handlers{
		contacts:   contacts,
		dispatcher: dispatcher,
		location:   location,
		signUp:     signUp,
	}
}
