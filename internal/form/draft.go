package form

import (
	"SafeCall/pkg/errors"
	"SafeCall/utils"
)

// Values 字段名到当前输入值
type Values map[string]string

// Rule 校验单个字段，values 为整张表单的当前值（确认密码需要读取其他字段）
type Rule func(value string, values Values) utils.Result

// Field 表单字段定义，Rules 按顺序执行，第一条失败即为该字段的错误
type Field struct {
	Name     string
	Label    string
	Required bool
	Rules    []Rule
}

// Schema 一张表单的字段列表，顺序即展示顺序
type Schema struct {
	Name   string
	Fields []Field
}

// Field 按名称查找字段定义
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Draft 表单草稿：当前输入值和每个字段的错误槽位。
// 不是并发安全的，每个会话各持有一份。
type Draft struct {
	schema Schema
	values Values
	errs   map[string]string
}

func New(schema Schema) *Draft {
	d := &Draft{schema: schema}
	d.Reset()
	return d
}

// FromValues 用已有输入构建草稿，未知字段被忽略
func FromValues(schema Schema, values Values) *Draft {
	d := New(schema)
	for name, value := range values {
		d.Set(name, value)
	}
	return d
}

func (d *Draft) Schema() Schema {
	return d.schema
}

// Set 更新字段值并立即清除该字段的错误，未知字段返回 false
func (d *Draft) Set(field, value string) bool {
	if _, ok := d.schema.Field(field); !ok {
		return false
	}
	d.values[field] = value
	delete(d.errs, field)
	return true
}

func (d *Draft) Value(field string) string {
	return d.values[field]
}

// Values 返回当前值的拷贝
func (d *Draft) Values() Values {
	out := make(Values, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

func (d *Draft) Error(field string) string {
	return d.errs[field]
}

// Errors 返回当前错误槽位的拷贝
func (d *Draft) Errors() map[string]string {
	out := make(map[string]string, len(d.errs))
	for k, v := range d.errs {
		out[k] = v
	}
	return out
}

// Validate 对每个字段独立执行规则，不会在第一个失败字段处短路；
// 输入值保持不变。全部通过时返回 nil。
func (d *Draft) Validate() error {
	fe := errors.NewFieldErrors(errors.ValidationFailed)
	d.errs = make(map[string]string)

	for _, f := range d.schema.Fields {
		value := d.values[f.Name]
		for _, rule := range f.Rules {
			res := rule(value, d.values)
			if !res.OK {
				d.errs[f.Name] = res.Message
				fe.Add(f.Name, res.Message)
				break
			}
		}
	}

	return fe.OrNil()
}

// CanSubmit 所有错误槽位为空时为 true，调用方应先执行 Validate
func (d *Draft) CanSubmit() bool {
	return len(d.errs) == 0
}

// Reset 清空输入值和错误
func (d *Draft) Reset() {
	d.values = make(Values, len(d.schema.Fields))
	for _, f := range d.schema.Fields {
		d.values[f.Name] = ""
	}
	d.errs = make(map[string]string)
}
