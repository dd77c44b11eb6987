package mainmodel

import (
	"fmt"
	"time"

	"pcl-checkout-api/internal/utils"
)

// 支付方式类型
const (
	MethodManual      = "manual"       // 人工转账指引
	MethodPaymentLink = "payment_link" // 外部支付链接跳转
)

// PaymentMethod 商户配置的支付方式
type PaymentMethod struct {
	MethodID     uint64          `gorm:"column:method_id;primaryKey" json:"methodId"`
	MID          uint64          `gorm:"column:m_id;not null;index" json:"mId"`
	Title        string          `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Type         string          `gorm:"column:type;type:varchar(20);not null" json:"type"` // manual | payment_link
	PayURL       *string         `gorm:"column:pay_url;type:varchar(255)" json:"payUrl"`
	Instructions *string         `gorm:"column:instructions;type:text" json:"instructions"`
	Countries    StringList      `gorm:"column:countries;type:json" json:"countries"`
	CustomFields CustomFieldList `gorm:"column:custom_fields;type:json" json:"customFields"`
	Status       int8            `gorm:"column:status;type:tinyint(1);not null" json:"status"`
	CreateTime   *time.Time      `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime   *time.Time      `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (PaymentMethod) TableName() string { return "w_payment_method" }

func (m *PaymentMethod) IsActive() bool { return m.Status == 1 }

// AppliesTo 支付方式是否适用于该国家
func (m *PaymentMethod) AppliesTo(country string) bool {
	return m.Countries.Contains(country)
}

// Validate 配置期校验。payment_link 类型必须带合法绝对URL，
// 非法配置在此拦截，不允许进入提交期匹配
func (m *PaymentMethod) Validate() error {
	switch m.Type {
	case MethodPaymentLink:
		if m.PayURL == nil || !utils.IsAbsoluteURL(*m.PayURL) {
			return fmt.Errorf("payment_link method %d: pay_url must be an absolute URL", m.MethodID)
		}
	case MethodManual:
		for _, f := range m.CustomFields {
			if err := f.Validate(); err != nil {
				return fmt.Errorf("manual method %d: %w", m.MethodID, err)
			}
		}
	default:
		return fmt.Errorf("method %d: unsupported type %q", m.MethodID, m.Type)
	}
	return nil
}
