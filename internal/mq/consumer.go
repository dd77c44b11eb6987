package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"pcl-checkout-api/internal/dal"
	"pcl-checkout-api/internal/dao"
	"pcl-checkout-api/internal/notify"
	"pcl-checkout-api/internal/system"
)

// StartConsumers 启动通知消费者：提交与核销事件推送到商户 Telegram 群。
// 通知失败不回写业务状态，只做有限重试
func StartConsumers() {
	if dal.RabbitCh == nil {
		log.Println("RabbitMQ channel not initialized")
		return
	}
	go consume("payment_created", handleCreated)
	consume("payment_status", handleStatus)
}

func consume(queue string, handler func(d amqp.Delivery)) {
	msgs, err := dal.RabbitCh.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		log.Printf("❌ consume %s failed: %v", queue, err)
		return
	}
	for d := range msgs {
		go handler(d)
	}
}

func handleCreated(d amqp.Delivery) {
	var evt PaymentCreatedEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		log.Printf("❌ payment.created unmarshal err: %v", err)
		_ = d.Nack(false, false)
		return
	}
	chatID := chatFor(evt.MerchantID)
	if chatID == "" {
		_ = d.Ack(false)
		return
	}
	text := notify.FormatPaymentCreated(evt.PaymentID, evt.Customer, evt.Amount, evt.Currency, evt.Country, evt.LinkSlug)
	if err := notify.SendTelegramMessage(chatID, text); err != nil {
		log.Printf("❌ notify payment.created failed: %v", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func handleStatus(d amqp.Delivery) {
	var evt PaymentStatusEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		log.Printf("❌ payment.status unmarshal err: %v", err)
		_ = d.Nack(false, false)
		return
	}
	chatID := chatFor(evt.MerchantID)
	if chatID == "" {
		_ = d.Ack(false)
		return
	}
	text := notify.FormatPaymentStatus(evt.PaymentID, evt.OldStatus, evt.NewStatus, evt.Operator)
	if err := notify.SendTelegramMessage(chatID, text); err != nil {
		log.Printf("❌ notify payment.status failed: %v", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// chatFor 商户配置的群优先，否则回退到平台默认群
func chatFor(merchantID uint64) string {
	mainDao := &dao.MainDao{}
	m, err := mainDao.GetMerchant(merchantID)
	if err != nil || m == nil {
		log.Printf("❌ merchant %d lookup failed: %v", merchantID, err)
		return system.BotChatID
	}
	if m.TgChatID != "" {
		return m.TgChatID
	}
	return system.BotChatID
}
