package mainmodel

type Merchant struct {
	MerchantID uint64 `gorm:"column:merchant_id;primaryKey"`
	Name       string `gorm:"column:name"`
	Status     int8   `gorm:"column:status"`
	ApiKey     string `gorm:"column:api_key"`
	TgChatID   string `gorm:"column:tg_chat_id"` // 商户通知群，空则回退平台默认群
}

func (Merchant) TableName() string { return "w_merchant" }
