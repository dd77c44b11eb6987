package system

import (
	"log"
)

// BotChatID 平台默认通知群，商户未配置专属群时使用
var BotChatID string

func Config() {

	BotChatID = (&ConfigSystem{}).GetConfigCacheByConfigKey("sys.telegram.notify.group").ConfigValue

	log.Printf("Telegram 默认通知群ID: %s", BotChatID)

}
