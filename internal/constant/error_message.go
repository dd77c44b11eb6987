package constant

import "net/http"

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Cache error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求处理超时", "Request timeout"},

	// 参数错误
	CodeInvalidParams:     {"参数格式错误", "Invalid params"},
	CodeMissingParams:     {"缺少必要参数", "Missing params"},
	CodeParamsFormatError: {"参数格式错误", "Params format error"},
	CodeDuplicateRequest:  {"重复请求", "Duplicate request"},

	// 认证授权错误
	CodeUnauthorized:     {"未授权访问", "Unauthorized"},
	CodeSignatureError:   {"签名验证失败", "Invalid signature"},
	CodeAccessDenied:     {"访问权限不足", "Access denied"},
	CodeMerchantDisabled: {"商户账号已被禁用", "Merchant disabled"},

	// 收款链接相关错误
	CodeLinkNotFound: {"收款链接不存在", "Checkout link not found"},
	CodeLinkMismatch: {"收款链接已更新，请刷新页面", "Checkout link changed, please refresh"},

	// 国家/币种相关错误
	CodeInvalidCountry:        {"国家不支持", "Country not supported"},
	CodeCurrencyNotConfigured: {"国家未配置币种", "Currency not configured for country"},

	// 支付方式相关错误
	CodeInvalidMethod:      {"支付方式不可用", "Payment method not available"},
	CodeMethodURLInvalid:   {"支付方式跳转地址无效", "Payment method URL invalid"},
	CodeCustomFieldInvalid: {"自定义字段配置无效", "Custom field config invalid"},

	// 提交相关错误
	CodeMissingFields:       {"提交缺少必填字段", "Missing required fields"},
	CodeAmountMismatch:      {"提交金额与链接金额不一致", "Amount does not match link amount"},
	CodeUploadFailed:        {"支付凭证上传失败", "Proof upload failed"},
	CodeLedgerWriteFailed:   {"支付记录写入失败", "Payment record write failed"},
	CodeDuplicateSubmission: {"重复提交", "Duplicate submission"},

	// 核销相关错误
	CodePaymentNotFound:   {"支付记录不存在", "Payment not found"},
	CodeInvalidTransition: {"非法的状态流转", "Invalid status transition"},
	CodeNotPaymentOwner:   {"无权操作该支付记录", "Not the owner of this payment"},
}

// HTTPStatus 错误码到 HTTP 状态码的映射：
// 链接类错误对外统一 404，校验类错误 400，存储/账本错误 500
func HTTPStatus(code int) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeLinkNotFound, CodeLinkMismatch, CodePaymentNotFound:
		return http.StatusNotFound
	case CodeInvalidCountry, CodeCurrencyNotConfigured, CodeInvalidMethod,
		CodeMethodURLInvalid, CodeCustomFieldInvalid, CodeMissingFields,
		CodeAmountMismatch, CodeDuplicateSubmission, CodeInvalidTransition,
		CodeInvalidParams, CodeMissingParams, CodeParamsFormatError, CodeDuplicateRequest:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeSignatureError, CodeMerchantDisabled:
		return http.StatusUnauthorized
	case CodeAccessDenied, CodeNotPaymentOwner:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
