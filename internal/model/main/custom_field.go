package mainmodel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// 自定义字段类型（manual 类型支付方式的附加采集项）
const (
	FieldText     = "text"
	FieldNumber   = "number"
	FieldEmail    = "email"
	FieldTel      = "tel"
	FieldTextarea = "textarea"
)

// CustomField 自定义采集字段定义
type CustomField struct {
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Validate 校验字段定义，kind 必须为受支持的枚举值
func (f CustomField) Validate() error {
	if strings.TrimSpace(f.Label) == "" {
		return fmt.Errorf("custom field label is empty")
	}
	switch f.Kind {
	case FieldText, FieldNumber, FieldEmail, FieldTel, FieldTextarea:
		return nil
	default:
		return fmt.Errorf("unsupported custom field kind: %q", f.Kind)
	}
}

type CustomFieldList []CustomField

func (l *CustomFieldList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("CustomFieldList scan failed: %v", value)
	}
	return json.Unmarshal(bytes, l)
}

func (l CustomFieldList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// StringList JSON 数组列（国家代码集合等）
type StringList []string

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("StringList scan failed: %v", value)
	}
	return json.Unmarshal(bytes, l)
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Contains 大小写不敏感匹配
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
