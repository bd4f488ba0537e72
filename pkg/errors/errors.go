package errors

import (
	stderrors "errors"
	"sort"
	"strings"
)

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// Is 按错误码比较，便于 errors.Is 匹配包装后的错误。
func (d Definition) Is(target error) bool {
	t, ok := target.(Definition)
	return ok && t.Code == d.Code
}

// 通用错误。
var (
	InvalidRequest   = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	InternalError    = Definition{Code: "INTERNAL_ERROR", Message: "Internal error"}
	RateLimited      = Definition{Code: "RATE_LIMITED", Message: "Too many requests"}
	ValidationFailed = Definition{Code: "VALIDATION_FAILED", Message: "Validation failed"}
)

// 联系人模块错误。
var (
	ContactNotFound     = Definition{Code: "CONTACT_NOT_FOUND", Message: "Contact not found"}
	ContactIDExhausted  = Definition{Code: "CONTACT_ID_EXHAUSTED", Message: "Could not allocate a unique contact id"}
	ContactDraftInvalid = Definition{Code: "CONTACT_DRAFT_INVALID", Message: "Contact draft is missing required fields"}
)

// 呼叫模块错误。
var (
	DispatchPending       = Definition{Code: "DISPATCH_PENDING", Message: "A call is already in progress"}
	DispatchTargetUnknown = Definition{Code: "DISPATCH_TARGET_UNKNOWN", Message: "Unknown call target"}
)

// 定位模块错误。
var (
	LocationDenied = Definition{Code: "LOCATION_DENIED", Message: "Location access denied"}
)

// 注册模块错误。
var (
	SignUpInProgress = Definition{Code: "SIGNUP_IN_PROGRESS", Message: "Account creation already in progress"}
)

// FieldErrors 表单字段级错误，key 为字段名，value 为展示给用户的提示。
// 所有字段一次性返回，前端可以同时高亮。
type FieldErrors struct {
	Definition
	Fields map[string]string
}

// NewFieldErrors 以给定 Definition 创建空的字段错误集合。
func NewFieldErrors(def Definition) *FieldErrors {
	return &FieldErrors{Definition: def, Fields: map[string]string{}}
}

func (e *FieldErrors) Error() string {
	names := e.Names()
	if len(names) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(names, ", ")
}

func (e *FieldErrors) Unwrap() error {
	return e.Definition
}

// Add 记录字段错误，同一字段只保留第一条。
func (e *FieldErrors) Add(field, message string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = message
}

// Empty 没有任何字段错误时返回 true。
func (e *FieldErrors) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Names 返回按字母排序的出错字段名。
func (e *FieldErrors) Names() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OrNil 没有错误时返回 nil，避免把空集合当作 error 返回。
func (e *FieldErrors) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// AsFieldErrors 从错误链中取出 FieldErrors。
func AsFieldErrors(err error) (*FieldErrors, bool) {
	var fe *FieldErrors
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsDefinition 从错误链中取出 Definition。
func AsDefinition(err error) (Definition, bool) {
	var def Definition
	if stderrors.As(err, &def) {
		return def, true
	}
	return Definition{}, false
}
