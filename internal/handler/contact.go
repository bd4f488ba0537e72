package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SafeCall/internal/form"
	"SafeCall/internal/model/dto"
	"SafeCall/pkg/response"
)

// ListContacts 列出紧急联系人，按添加顺序
// GET /v1/contacts
func (h *Handlers) ListContacts(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, dto.NewListContactsResponse(h.contacts.List()))
}

// CreateContact 新增紧急联系人
// POST /v1/contacts
func (h *Handlers) CreateContact(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateContactRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	draft := form.FromValues(form.ContactSchema, form.Values{
		form.FieldName:         req.Name,
		form.FieldRelationship: req.Relationship,
		form.FieldPhone:        req.Phone,
	})
	if err := draft.Validate(); err != nil {
		response.Error(ctx, c, err)
		return
	}

	contact, err := h.contacts.Add(ctx, req.Draft())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, dto.NewContactItem(contact))
}

// DeleteContact 删除紧急联系人，不存在时同样返回 204
// DELETE /v1/contacts/:contact_id
func (h *Handlers) DeleteContact(ctx context.Context, c *app.RequestContext) {
	h.contacts.Remove(ctx, c.Param("contact_id"))
	response.NoContent(ctx, c)
}
