package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern        = regexp.MustCompile(`^[\d\-+()]{10,}$`)
	contactPhonePattern = regexp.MustCompile(`^[\d\-+()]*\d[\d\-+()]*$`)
)

const (
	MsgInvalidEmail     = "Please enter a valid email"
	MsgInvalidPhone     = "Please enter a valid phone number"
	MsgPasswordMismatch = "Passwords do not match"
)

// Result 单个字段校验结果，OK 为 false 时 Message 为展示给用户的提示
type Result struct {
	OK      bool
	Message string
}

func pass() Result {
	return Result{OK: true}
}

func fail(msg string) Result {
	return Result{Message: msg}
}

// Required 去掉首尾空白后为空即失败
func Required(label, value string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(label + " is required")
	}
	return pass()
}

// Email 形如 local@domain.tld，不允许任何 Unicode 空白
func Email(value string) Result {
	if strings.IndexFunc(value, isSpace) >= 0 || !emailPattern.MatchString(value) {
		return fail(MsgInvalidEmail)
	}
	return pass()
}

// Phone 去掉所有空白后至少 10 位数字或 -+() 字符
func Phone(value string) Result {
	if !phonePattern.MatchString(stripSpace(value)) {
		return fail(MsgInvalidPhone)
	}
	return pass()
}

// ContactPhone 联系人表单的宽松校验：只检查字符集，且至少包含一位数字
func ContactPhone(value string) Result {
	if !contactPhonePattern.MatchString(stripSpace(value)) {
		return fail(MsgInvalidPhone)
	}
	return pass()
}

// MinLength 按字符数计算长度
func MinLength(label, value string, n int) Result {
	if utf8.RuneCountInString(value) < n {
		return fail(fmt.Sprintf("%s must be at least %d characters", label, n))
	}
	return pass()
}

// Matches 用于确认密码
func Matches(value, other string) Result {
	if value != other {
		return fail(MsgPasswordMismatch)
	}
	return pass()
}

// MaskPhone 只保留后四位，用于日志
func MaskPhone(phone string) string {
	runes := []rune(stripSpace(phone))
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}

// isSpace RE2 的 \s 只匹配 ASCII 空白，这里补上 Unicode 空白和 BOM
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, s)
}
