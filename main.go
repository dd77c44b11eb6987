package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"pcl-checkout-api/internal/config"
	"pcl-checkout-api/internal/dal"
	"pcl-checkout-api/internal/handler"
	"pcl-checkout-api/internal/idgen"
	"pcl-checkout-api/internal/middleware"
	"pcl-checkout-api/internal/mq"
	"pcl-checkout-api/internal/shard"
	"pcl-checkout-api/internal/system"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitPaymentDB()
	dal.InitRedis()
	dal.InitRabbitMQ()
	dal.InitS3()

	// idgen & shard router
	idgen.Init(1)
	shard.InitShardEngines(uint32(config.C.Checkout.ShardsPerMonth))

	// sys config cache
	system.Config()

	// start consumers
	go mq.StartConsumers()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover())

	ch := handler.NewCheckoutHandler()
	r.POST("/checkout/:slug/submit", middleware.TraceAuditMiddleware(), ch.Submit)
	r.GET("/checkout/:slug/validate", ch.Validate)
	r.GET("/checkout/:slug/countries", ch.Countries)
	r.GET("/checkout/:slug/methods", ch.Methods)

	v1 := r.Group("/api/v1")
	{
		ph := handler.NewPaymentHandler()
		v1.GET("/payments", middleware.MerchantAuth(), ph.List)
		v1.GET("/payments/:id", middleware.MerchantAuth(), ph.Get)
		v1.POST("/payments/:id/transition", middleware.MerchantAuth(), ph.Transition)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
