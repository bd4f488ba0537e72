package model

import (
	"fmt"
	"time"
)

// DispatchState 模拟呼叫状态：Idle → Pending → Resolved
type DispatchState string

const (
	DispatchStateIdle     DispatchState = "idle"
	DispatchStatePending  DispatchState = "pending"
	DispatchStateResolved DispatchState = "resolved"
)

// TargetKind 呼叫目标类型
type TargetKind string

const (
	TargetKindService TargetKind = "service" // 固定的公共服务号码
	TargetKindContact TargetKind = "contact" // 用户保存的紧急联系人
)

// Target 呼叫目标。Service 类型时 Key 为服务标识，Contact 类型时 ContactID 指向联系人。
type Target struct {
	Kind      TargetKind `json:"kind"`
	Key       string     `json:"key,omitempty"`
	ContactID string     `json:"contact_id,omitempty"`
	Label     string     `json:"label"`
	Number    string     `json:"number"`
}

// Dispatch 一次进行中的模拟呼叫，Resolved 后即被丢弃
type Dispatch struct {
	StartedAt time.Time     `json:"started_at"`
	ID        string        `json:"id"`
	Surface   string        `json:"surface"`
	State     DispatchState `json:"state"`
	Target    Target        `json:"target"`
}

// Notification 呼叫完成时展示给用户的提示，State 恒为 resolved
type Notification struct {
	ResolvedAt time.Time     `json:"resolved_at"`
	DispatchID string        `json:"dispatch_id"`
	Surface    string        `json:"surface"`
	State      DispatchState `json:"state"`
	Label      string        `json:"label"`
	Number     string        `json:"number"`
	Message    string        `json:"message"`
}

// CallingMessage 生成 "Calling {label}... In production, this would dial {number}"
func CallingMessage(label, number string) string {
	return fmt.Sprintf("Calling %s... In production, this would dial %s", label, number)
}
