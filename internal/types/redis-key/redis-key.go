package rediskey

const prefix = "pcl"

// SysConfigKey 配置表缓存 hash key
func SysConfigKey() string { return prefix + ":system:config" }

// CheckoutLinkKey 收款链接热缓存 key
func CheckoutLinkKey(slug string) string { return prefix + ":checkout:link:" + slug }

// SubmitTokenKey 提交幂等令牌 key
func SubmitTokenKey(slug, token string) string {
	return prefix + ":checkout:token:" + slug + ":" + token
}
