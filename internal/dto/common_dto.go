package dto

import "time"

// AuditContextPayload 请求审计上下文，中间件创建，handler 补全
type AuditContextPayload struct {
	TraceID      string
	Slug         string
	MerchantID   uint64
	PaymentID    uint64
	Event        string
	Status       string
	ErrorMsg     string
	RequestBody  string
	ResponseBody string
	IP           string
	UserAgent    string
	StartTime    time.Time
	CreatedAt    time.Time
	LatencyMs    int64
}

// ConfigDetailResponse 系统配置查询结果
type ConfigDetailResponse struct {
	ConfigId    int    `json:"configId"`
	ConfigKey   string `json:"configKey"`
	ConfigValue string `json:"configValue"`
}
