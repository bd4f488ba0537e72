package form

import (
	"SafeCall/utils"
)

func Required(label string) Rule {
	return func(value string, _ Values) utils.Result {
		return utils.Required(label, value)
	}
}

// Present 只检查非空，不去除空白（密码字段）
func Present(label string) Rule {
	return PresentMessage(label + " is required")
}

// PresentMessage 与 Present 相同，但使用自定义提示
func PresentMessage(msg string) Rule {
	return func(value string, _ Values) utils.Result {
		if value == "" {
			return utils.Result{Message: msg}
		}
		return utils.Result{OK: true}
	}
}

func Email() Rule {
	return func(value string, _ Values) utils.Result {
		return utils.Email(value)
	}
}

func Phone() Rule {
	return func(value string, _ Values) utils.Result {
		return utils.Phone(value)
	}
}

func ContactPhone() Rule {
	return func(value string, _ Values) utils.Result {
		return utils.ContactPhone(value)
	}
}

func MinLength(label string, n int) Rule {
	return func(value string, _ Values) utils.Result {
		return utils.MinLength(label, value, n)
	}
}

// MatchesField 要求与另一字段的值完全一致
func MatchesField(other string) Rule {
	return func(value string, values Values) utils.Result {
		return utils.Matches(value, values[other])
	}
}
