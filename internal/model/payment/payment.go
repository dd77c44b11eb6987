package paymentmodel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FieldValues 客户填写的自定义字段值，JSON 列
type FieldValues map[string]string

func (v *FieldValues) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("FieldValues scan failed: %v", value)
	}
	return json.Unmarshal(bytes, v)
}

func (v FieldValues) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Payment 支付记录，写入后除 status/finish_time 外不可变。
// 币种在创建时由国家参考表解析得出，绝不取自客户端输入；
// proof_url 创建时一次性写入
type Payment struct {
	PaymentID     uint64          `gorm:"column:payment_id;primaryKey" json:"paymentId"`
	MID           uint64          `gorm:"column:m_id;not null;index:idx_merchant_time" json:"mId"`
	LinkID        uint64          `gorm:"column:link_id;not null;index" json:"linkId"`
	MethodID      uint64          `gorm:"column:method_id;not null" json:"methodId"`
	CustomerName  string          `gorm:"column:customer_name;type:varchar(100);not null" json:"customerName"`
	CustomerEmail string          `gorm:"column:customer_email;type:varchar(100);not null" json:"customerEmail"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,4);not null" json:"amount"`
	Currency      string          `gorm:"column:currency;type:char(3);not null" json:"currency"`
	Country       string          `gorm:"column:country;type:char(2);not null" json:"country"`
	ProofURL      string          `gorm:"column:proof_url;type:varchar(255);not null" json:"proofUrl"`
	ProofKey      string          `gorm:"column:proof_key;type:varchar(255);not null" json:"-"`
	Status        Status          `gorm:"column:status;type:varchar(32);not null" json:"status"`
	FieldValues   FieldValues     `gorm:"column:field_values;type:json" json:"fieldValues"`
	ClientIP      string          `gorm:"column:client_ip;type:varchar(45)" json:"-"`
	CreateTime    *time.Time      `gorm:"column:create_time;autoCreateTime;index:idx_merchant_time" json:"createTime"`
	UpdateTime    *time.Time      `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
	FinishTime    *time.Time      `gorm:"column:finish_time" json:"finishTime"` // 进入终态时间
}
