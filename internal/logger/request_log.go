package logger

import (
	"log"

	"pcl-checkout-api/internal/dal"
	"pcl-checkout-api/internal/dto"
	paymentmodel "pcl-checkout-api/internal/model/payment"
	"pcl-checkout-api/internal/shard"
)

// WritePaymentLog 异步写提交审计日志。校验失败的请求没有支付ID，
// 无法路由分表，只落文件日志
func WritePaymentLog(payload *dto.AuditContextPayload) {
	if payload == nil {
		log.Printf("[AuditLogger] payload 为空，跳过写入")
		return
	}
	if payload.PaymentID == 0 {
		Checkout.WithField("trace_id", payload.TraceID).
			WithField("slug", payload.Slug).
			WithField("ip", payload.IP).
			WithField("latency_ms", payload.LatencyMs).
			WithField("error", payload.ErrorMsg).
			Info("submit rejected before ledger write")
		return
	}

	table := shard.PaymentLogShard.TableForID(payload.PaymentID)
	entry := paymentmodel.PaymentLog{
		PaymentID: payload.PaymentID,
		MID:       payload.MerchantID,
		Event:     paymentmodel.EventSubmit,
		NewStatus: string(paymentmodel.StatusPendingVerification),
		TraceID:   payload.TraceID,
		IP:        payload.IP,
		UserAgent: payload.UserAgent,
		LatencyMs: payload.LatencyMs,
		Remark:    payload.ErrorMsg,
	}

	go func(entry paymentmodel.PaymentLog, tableName string) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[AuditLogger] goroutine panic: trace_id=%s, err=%v", entry.TraceID, r)
			}
		}()

		if err := dal.PaymentDB.Table(tableName).Create(&entry).Error; err != nil {
			log.Printf("[AuditLogger] 写入失败: table=%s, trace_id=%s, err=%v", tableName, entry.TraceID, err)
		}
	}(entry, table)
}
