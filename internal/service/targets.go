package service

import "SafeCall/internal/model"

// 固定的公共服务号码，顺序即页面展示顺序
const (
	TargetEmergency          = "emergency"
	TargetFire               = "fire"
	TargetPolice             = "police"
	TargetAmbulance          = "ambulance"
	TargetNonEmergencyPolice = "non-emergency-police"
	TargetPoisonControl      = "poison-control"
	TargetSuicidePrevention  = "suicide-prevention"
)

// ServiceTarget 一个固定服务号码，Featured 为首页的大号紧急按钮
type ServiceTarget struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Number   string `json:"number"`
	Featured bool   `json:"featured"`
}

var serviceTargets = []ServiceTarget{
	{Key: TargetEmergency, Label: "Emergency Services", Number: "911", Featured: true},
	{Key: TargetFire, Label: "Fire Department", Number: "911"},
	{Key: TargetPolice, Label: "Police", Number: "911"},
	{Key: TargetAmbulance, Label: "Ambulance", Number: "911"},
	{Key: TargetNonEmergencyPolice, Label: "Non-Emergency Police", Number: "311"},
	{Key: TargetPoisonControl, Label: "Poison Control", Number: "1-800-222-1222"},
	{Key: TargetSuicidePrevention, Label: "Suicide Prevention Hotline", Number: "988"},
}

// ServiceTargets 返回全部固定服务号码的副本
func ServiceTargets() []ServiceTarget {
	out := make([]ServiceTarget, len(serviceTargets))
	copy(out, serviceTargets)
	return out
}

// LookupServiceTarget 按 key 查找固定服务号码
func LookupServiceTarget(key string) (ServiceTarget, bool) {
	for _, t := range serviceTargets {
		if t.Key == key {
			return t, true
		}
	}
	return ServiceTarget{}, false
}

func (t ServiceTarget) Target() model.Target {
	return model.Target{
		Kind:   model.TargetKindService,
		Key:    t.Key,
		Label:  t.Label,
		Number: t.Number,
	}
}

// ContactTarget 把联系人转换为呼叫目标，展示名使用联系人姓名
func ContactTarget(c model.Contact) model.Target {
	return model.Target{
		Kind:      model.TargetKindContact,
		ContactID: c.ID,
		Label:     c.Name,
		Number:    c.Phone,
	}
}
