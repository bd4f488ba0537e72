package model

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Coordinate 十进制经纬度
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Display 保留四位小数，如 "40.7128, -74.0060"
func (c Coordinate) Display() string {
	return formatFixed4(c.Latitude) + ", " + formatFixed4(c.Longitude)
}

var (
	tenThousand = big.NewFloat(10000)
	half        = big.NewFloat(0.5)
)

// formatFixed4 与浏览器 toFixed(4) 一致：按二进制精确值取整，恰好一半时远离零。
// fmt 的 %.4f 在恰好一半时取偶数，0.03125 会得到 0.0312。
func formatFixed4(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Sprintf("%.4f", x)
	}

	scaled := new(big.Float).SetPrec(128).SetFloat64(math.Abs(x))
	scaled.Mul(scaled, tenThousand)

	n, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetPrec(128).SetInt(n))
	if frac.Cmp(half) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) < 5 {
		digits = strings.Repeat("0", 5-len(digits)) + digits
	}

	out := digits[:len(digits)-4] + "." + digits[len(digits)-4:]
	if x < 0 {
		out = "-" + out
	}
	return out
}

// LocationState 定位状态
type LocationState string

const (
	LocationStateUnknown  LocationState = "unknown"  // 尚未返回，界面不展示
	LocationStateResolved LocationState = "resolved" // 已获取坐标
	LocationStateDenied   LocationState = "denied"   // 用户拒绝或不可用，不再重试
)

const LocationDeniedText = "Location access denied"

// LocationStatus 定位快照
type LocationStatus struct {
	Coordinate *Coordinate   `json:"coordinate,omitempty"`
	State      LocationState `json:"state"`
	Display    string        `json:"display"`
}
