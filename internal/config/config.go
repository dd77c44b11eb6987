package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type ProofCfg struct {
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	PublicBaseURL string `mapstructure:"publicBaseUrl"`
	SignExpirySec int64  `mapstructure:"signExpirySec"`
	MaxUploadMB   int64  `mapstructure:"maxUploadMB"`
}
type CheckoutCfg struct {
	LinkCacheTTLSec  int `mapstructure:"linkCacheTTLSec"`
	SubmitTimeoutSec int `mapstructure:"submitTimeoutSec"`
	ListMonths       int `mapstructure:"listMonths"`
	ShardsPerMonth   int `mapstructure:"shardsPerMonth"`
}

type Root struct {
	Server       ServerCfg   `mapstructure:"server"`
	MysqlMain    MysqlCfg    `mapstructure:"mysql_main"`
	MysqlPayment MysqlCfg    `mapstructure:"mysql_payment"`
	RabbitMQ     RabbitCfg   `mapstructure:"rabbitmq"`
	Redis        RedisCfg    `mapstructure:"redis"`
	Proof        ProofCfg    `mapstructure:"proof"`
	Checkout     CheckoutCfg `mapstructure:"checkout"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Checkout.LinkCacheTTLSec <= 0 {
		C.Checkout.LinkCacheTTLSec = 60
	}
	if C.Checkout.SubmitTimeoutSec <= 0 {
		C.Checkout.SubmitTimeoutSec = 15
	}
	if C.Checkout.ListMonths <= 0 {
		C.Checkout.ListMonths = 3
	}
	if C.Checkout.ShardsPerMonth <= 0 {
		C.Checkout.ShardsPerMonth = 4
	}
	if C.Proof.SignExpirySec <= 0 {
		C.Proof.SignExpirySec = 600
	}
	if C.Proof.MaxUploadMB <= 0 {
		C.Proof.MaxUploadMB = 5
	}
}
