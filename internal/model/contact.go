package model

import "time"

// Contact 紧急联系人。ID 创建后不可变；Name 与 Phone 非空。
// 记录不会被原地修改，只能新增或删除。
type Contact struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	Phone        string    `json:"phone"`
}

// ContactDraft 新增联系人时的输入
type ContactDraft struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}
