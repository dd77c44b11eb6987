package dto

import mainmodel "pcl-checkout-api/internal/model/main"

// SubmitReq 客户提交表单（multipart），proof 文件单独经 FormFile 读取
type SubmitReq struct {
	CustomerName    string `form:"customer_name"`
	CustomerEmail   string `form:"customer_email"`
	Amount          string `form:"amount"`
	Country         string `form:"country"`
	PaymentMethodID string `form:"payment_method_id"`
	CheckoutLinkID  string `form:"checkout_link_id"`
	ClientToken     string `form:"client_token"` // 可选幂等令牌

	// Fields 自定义字段值（fields[标签]=值），manual 方式使用
	Fields map[string]string `form:"-"`
}

// SubmitResp 提交成功响应数据
type SubmitResp struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// ValidateResp 链接校验响应
type ValidateResp struct {
	Valid bool   `json:"valid"`
	Title string `json:"title,omitempty"`
}

// CountryItem 链接可用国家投影
type CountryItem struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// MethodItem 链接可用支付方式投影
type MethodItem struct {
	MethodID     string                    `json:"method_id"`
	Title        string                    `json:"title"`
	Type         string                    `json:"type"`
	PayURL       string                    `json:"pay_url,omitempty"`
	Instructions string                    `json:"instructions,omitempty"`
	CustomFields mainmodel.CustomFieldList `json:"custom_fields,omitempty"`
}
