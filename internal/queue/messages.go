package queue

import (
	"time"

	"SafeCall/internal/model"
)

// DispatchResolvedMessage 呼叫完成后发往 RabbitMQ 的消息
type DispatchResolvedMessage struct {
	ResolvedAt time.Time `json:"resolved_at"`
	MessageID  string    `json:"message_id"`
	DispatchID string    `json:"dispatch_id"`
	Surface    string    `json:"surface"`
	Label      string    `json:"label"`
	Number     string    `json:"number"`
	Message    string    `json:"message"`
}

func newDispatchResolvedMessage(n model.Notification) DispatchResolvedMessage {
	return DispatchResolvedMessage{
		MessageID:  "dispatch_resolved_" + n.DispatchID,
		DispatchID: n.DispatchID,
		Surface:    n.Surface,
		Label:      n.Label,
		Number:     n.Number,
		Message:    n.Message,
		ResolvedAt: n.ResolvedAt,
	}
}

// Notification 还原为领域对象
func (m DispatchResolvedMessage) Notification() model.Notification {
	return model.Notification{
		DispatchID: m.DispatchID,
		Surface:    m.Surface,
		State:      model.DispatchStateResolved,
		Label:      m.Label,
		Number:     m.Number,
		Message:    m.Message,
		ResolvedAt: m.ResolvedAt,
	}
}
