package dal

import (
	"fmt"
	"log"
	"time"

	"pcl-checkout-api/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// PaymentDB 支付账本库，按月分表见 internal/shard
var PaymentDB *gorm.DB

func InitPaymentDB() {
	c := config.C.MysqlPayment
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect payment db failed: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
	PaymentDB = db
}
