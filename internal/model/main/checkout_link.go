package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// 金额策略
const (
	AmountPolicyFixed    = "fixed"
	AmountPolicyVariable = "variable"
)

// CheckoutLink 商户发布的收款链接。slug 全局唯一且创建后不可变，
// 停用仅置 status=0，存在支付记录时不物理删除
type CheckoutLink struct {
	LinkID           uint64           `gorm:"column:link_id;primaryKey" json:"linkId"`
	MID              uint64           `gorm:"column:m_id;not null;index" json:"mId"`
	Slug             string           `gorm:"column:slug;type:varchar(64);uniqueIndex;not null" json:"slug"`
	Title            string           `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Description      string           `gorm:"column:description;type:varchar(500)" json:"description"`
	AmountPolicy     string           `gorm:"column:amount_policy;type:varchar(10);not null" json:"amountPolicy"` // fixed | variable
	FixedAmount      *decimal.Decimal `gorm:"column:fixed_amount;type:decimal(18,4)" json:"fixedAmount"`
	AllowedCountries StringList       `gorm:"column:allowed_countries;type:json" json:"allowedCountries"`
	Status           int8             `gorm:"column:status;type:tinyint(1);not null" json:"status"` // 0:停用,1:启用
	CreateTime       *time.Time       `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime       *time.Time       `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (CheckoutLink) TableName() string { return "w_checkout_link" }

func (l *CheckoutLink) IsActive() bool { return l.Status == 1 }

// AllowsCountry 国家是否在链接允许范围内，空集合视为不限国家
func (l *CheckoutLink) AllowsCountry(code string) bool {
	if len(l.AllowedCountries) == 0 {
		return true
	}
	return l.AllowedCountries.Contains(code)
}
