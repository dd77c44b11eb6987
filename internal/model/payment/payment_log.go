package paymentmodel

import "time"

// 日志事件类型
const (
	EventSubmit     = "submit"
	EventTransition = "transition"
)

// PaymentLog 支付审计日志：提交请求与状态流转各记一条，
// 流转日志与状态更新同事务写入
type PaymentLog struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PaymentID uint64    `gorm:"column:payment_id;not null;index" json:"paymentId"`
	MID       uint64    `gorm:"column:m_id;not null" json:"mId"`
	Event     string    `gorm:"column:event;type:varchar(20);not null" json:"event"`
	OldStatus string    `gorm:"column:old_status;type:varchar(32)" json:"oldStatus"`
	NewStatus string    `gorm:"column:new_status;type:varchar(32)" json:"newStatus"`
	Operator  string    `gorm:"column:operator;type:varchar(64)" json:"operator"`
	TraceID   string    `gorm:"column:trace_id;type:varchar(64)" json:"traceId"`
	IP        string    `gorm:"column:ip;type:varchar(45)" json:"ip"`
	UserAgent string    `gorm:"column:user_agent;type:varchar(255)" json:"userAgent"`
	LatencyMs int64     `gorm:"column:latency_ms" json:"latencyMs"`
	Remark    string    `gorm:"column:remark;type:varchar(255)" json:"remark"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
