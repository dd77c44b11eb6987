package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pcl-checkout-api/internal/constant"
	"pcl-checkout-api/internal/dao"
	"pcl-checkout-api/internal/utils"
)

// MerchantAuth 商户API签名认证：
// X-Merchant-Id + X-Timestamp + X-Sign，密钥为商户 api_key，
// 时间戳超出窗口直接拒绝。通过后把商户写入 context
func MerchantAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		midStr := c.GetHeader("X-Merchant-Id")
		ts := c.GetHeader("X-Timestamp")
		sign := c.GetHeader("X-Sign")
		if midStr == "" || ts == "" || sign == "" {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}

		tsInt, err := utils.ParseTimestamp(ts)
		if err != nil || !utils.IsTimestampValid(tsInt, 1*time.Minute) {
			log.Printf("请求超时: %v", ts)
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}

		mid, err := strconv.ParseUint(midStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}

		mainDao := &dao.MainDao{}
		merchant, err := mainDao.GetMerchant(mid)
		if err != nil || merchant == nil {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}
		if merchant.Status != 1 {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeMerchantDisabled))
			c.Abort()
			return
		}

		params := map[string]string{
			"merchant_id": midStr,
			"timestamp":   ts,
			"sign":        sign,
		}
		if !utils.VerifySign(params, merchant.ApiKey) {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeSignatureError))
			c.Abort()
			return
		}

		c.Set("merchant_id", merchant.MerchantID)
		c.Set("merchant_name", merchant.Name)
		c.Next()
	}
}
