package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"pcl-checkout-api/internal/dal"
)

type PaymentCreatedEvent struct {
	PaymentID  uint64 `json:"payment_id"`
	MerchantID uint64 `json:"merchant_id"`
	LinkSlug   string `json:"link_slug"`
	Customer   string `json:"customer"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Country    string `json:"country"`
	CreatedAt  int64  `json:"created_at"`
}

type PaymentStatusEvent struct {
	PaymentID  uint64 `json:"payment_id"`
	MerchantID uint64 `json:"merchant_id"`
	OldStatus  string `json:"old_status"`
	NewStatus  string `json:"new_status"`
	Operator   string `json:"operator"`
	ChangedAt  int64  `json:"changed_at"`
}

type Publisher struct{}

func NewPublisher() *Publisher { return &Publisher{} }

// PaymentCreated 发布新提交事件，失败只记日志，不影响提交结果
func (p *Publisher) PaymentCreated(evt PaymentCreatedEvent) error {
	return publish("payment.created", evt)
}

// PaymentStatus 发布状态流转事件
func (p *Publisher) PaymentStatus(evt PaymentStatusEvent) error {
	return publish("payment.status", evt)
}

func publish(routingKey string, evt any) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(evt)
	err := dal.RabbitCh.Publish(
		"payment_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}
