package dal

import (
	"log"

	"pcl-checkout-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("payment_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("payment_created", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare payment_created failed: %v", err)
	}
	if _, err := ch.QueueDeclare("payment_status", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare payment_status failed: %v", err)
	}
	if err := ch.QueueBind("payment_created", "payment.created", "payment_events", false, nil); err != nil {
		log.Fatalf("queue bind payment_created failed: %v", err)
	}
	if err := ch.QueueBind("payment_status", "payment.status", "payment_events", false, nil); err != nil {
		log.Fatalf("queue bind payment_status failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
