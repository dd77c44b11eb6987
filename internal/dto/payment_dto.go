package dto

import "time"

// ListPaymentsReq 商户侧支付列表查询
type ListPaymentsReq struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// TransitionReq 商户核销请求
type TransitionReq struct {
	Status string `json:"status" binding:"required"`
	Remark string `json:"remark"`
}

// PaymentItem 支付记录对外投影
type PaymentItem struct {
	PaymentID      string            `json:"payment_id"`
	LinkID         string            `json:"link_id"`
	MethodID       string            `json:"method_id"`
	CustomerName   string            `json:"customer_name"`
	CustomerEmail  string            `json:"customer_email"`
	Amount         string            `json:"amount"`
	Currency       string            `json:"currency"`
	Country        string            `json:"country"`
	Status         string            `json:"status"`
	ProofURL       string            `json:"proof_url"`
	SignedProofURL string            `json:"signed_proof_url,omitempty"`
	FieldValues    map[string]string `json:"field_values,omitempty"`
	CreateTime     *time.Time        `json:"create_time"`
	FinishTime     *time.Time        `json:"finish_time,omitempty"`
}

// PageResult 分页结果
type PageResult struct {
	Total int64         `json:"total"`
	Items []PaymentItem `json:"items"`
}
