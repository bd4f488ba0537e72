package dto

// ========== Dispatch 相关 DTO ==========

// CreateCallRequest 发起呼叫，Service 与 ContactID 二选一
type CreateCallRequest struct {
	Service   string `json:"service"`
	ContactID string `json:"contact_id"`
}
