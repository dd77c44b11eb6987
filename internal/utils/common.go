package utils

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IsAbsoluteURL 判断是否为合法的绝对URL（payment-link 类型支付方式要求）
func IsAbsoluteURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// ParseAmount 解析金额字符串，金额必须为正数
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, err
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return decimal.Zero, strconv.ErrRange
	}
	return amount, nil
}

// MapToJSON map转出为json
func MapToJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// GetTimestampMs 获取当前毫秒时间戳
func GetTimestampMs() int64 {
	return time.Now().UnixMilli()
}

// ParseTimestamp 解析毫秒时间戳字符串
func ParseTimestamp(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// IsTimestampValid 判断时间戳是否在允许偏移范围内
func IsTimestampValid(tsMs int64, window time.Duration) bool {
	diff := time.Since(time.UnixMilli(tsMs))
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}
