package constant

// 业务级错误码 (2xxx)

// 收款链接相关错误码
const (
	CodeLinkNotFound = 2000 // 收款链接不存在或已停用（对外不区分两种情况）
	CodeLinkMismatch = 2001 // 提交的链接ID与 slug 解析结果不一致，客户端状态已过期
)

// 国家/币种相关错误码
const (
	CodeInvalidCountry        = 2100 // 国家代码无效或不在链接允许的国家范围内
	CodeCurrencyNotConfigured = 2101 // 国家未配置币种，参考数据缺失
)

// 支付方式相关错误码
const (
	CodeInvalidMethod      = 2200 // 支付方式不存在、已停用或不适用于所选国家
	CodeMethodURLInvalid   = 2201 // payment-link 类型支付方式的跳转URL缺失或非法
	CodeCustomFieldInvalid = 2202 // 自定义字段配置非法，无法通过校验
)

// 提交相关错误码
const (
	CodeMissingFields       = 2300 // 提交缺少必填字段
	CodeAmountMismatch      = 2301 // 提交金额与链接固定金额不一致
	CodeUploadFailed        = 2302 // 支付凭证上传失败
	CodeLedgerWriteFailed   = 2303 // 支付记录写入失败
	CodeDuplicateSubmission = 2304 // 重复提交，相同的幂等令牌已被使用
)

// 核销相关错误码
const (
	CodePaymentNotFound   = 2400 // 支付记录不存在
	CodeInvalidTransition = 2401 // 非法的状态流转，目标状态从当前状态不可达
	CodeNotPaymentOwner   = 2402 // 支付记录不属于当前商户，禁止操作
)
