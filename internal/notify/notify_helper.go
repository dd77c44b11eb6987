package notify

import (
	"fmt"
	"strings"
	"time"
)

// FormatPaymentCreated 新提交通知文案（商户群）
func FormatPaymentCreated(paymentID uint64, customer, amount, currency, country, slug string) string {
	var sb strings.Builder
	sb.WriteString("*新收款提交待核销*\n")
	sb.WriteString(fmt.Sprintf("单号: `%d`\n", paymentID))
	sb.WriteString(fmt.Sprintf("链接: %s\n", escapeMarkdown(slug)))
	sb.WriteString(fmt.Sprintf("客户: %s\n", escapeMarkdown(customer)))
	sb.WriteString(fmt.Sprintf("金额: %s %s\n", escapeMarkdown(amount), escapeMarkdown(currency)))
	sb.WriteString(fmt.Sprintf("国家: %s\n", escapeMarkdown(country)))
	sb.WriteString(fmt.Sprintf("时间: %s", time.Now().Format("2006-01-02 15:04:05")))
	return sb.String()
}

// FormatPaymentStatus 状态流转通知文案
func FormatPaymentStatus(paymentID uint64, oldStatus, newStatus, operator string) string {
	var sb strings.Builder
	sb.WriteString("*支付状态已更新*\n")
	sb.WriteString(fmt.Sprintf("单号: `%d`\n", paymentID))
	sb.WriteString(fmt.Sprintf("状态: %s → %s\n", escapeMarkdown(oldStatus), escapeMarkdown(newStatus)))
	if operator != "" {
		sb.WriteString(fmt.Sprintf("操作人: %s\n", escapeMarkdown(operator)))
	}
	sb.WriteString(fmt.Sprintf("时间: %s", time.Now().Format("2006-01-02 15:04:05")))
	return sb.String()
}

// escapeMarkdown 转义 Telegram Markdown 特殊字符
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
