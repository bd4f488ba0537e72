package dto

import (
	"time"

	"SafeCall/internal/model"
)

// ========== Contact 相关 DTO ==========

// ContactItem 紧急联系人项，号码原样返回给本人，用于发起呼叫
type ContactItem struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	Phone        string    `json:"phone"`
}

// CreateContactRequest 创建联系人请求，字段缺失由表单校验报告
type CreateContactRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type ListContactsResponse struct {
	Items []ContactItem `json:"items"`
	Total int           `json:"total"`
}

func NewContactItem(c model.Contact) ContactItem {
	return ContactItem{
		CreatedAt:    c.CreatedAt,
		ID:           c.ID,
		Name:         c.Name,
		Relationship: c.Relationship,
		Phone:        c.Phone,
	}
}

func NewListContactsResponse(contacts []model.Contact) ListContactsResponse {
	items := make([]ContactItem, 0, len(contacts))
	for _, c := range contacts {
		items = append(items, NewContactItem(c))
	}
	return ListContactsResponse{Items: items, Total: len(items)}
}

func (r CreateContactRequest) Draft() model.ContactDraft {
	return model.ContactDraft{
		Name:         r.Name,
		Relationship: r.Relationship,
		Phone:        r.Phone,
	}
}
