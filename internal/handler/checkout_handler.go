package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pcl-checkout-api/internal/config"
	"pcl-checkout-api/internal/constant"
	"pcl-checkout-api/internal/dto"
	"pcl-checkout-api/internal/mq"
	"pcl-checkout-api/internal/service"
	"pcl-checkout-api/internal/utils"
)

// CheckoutHandler 公开提交端点处理器
type CheckoutHandler struct{ svc *service.CheckoutService }

func NewCheckoutHandler() *CheckoutHandler {
	pub := mq.NewPublisher()
	return &CheckoutHandler{svc: service.NewCheckoutService(pub)}
}

// Submit 客户提交支付凭证
func (h *CheckoutHandler) Submit(c *gin.Context) {
	slug := c.Param("slug")

	var audit *dto.AuditContextPayload
	if v, ok := c.Get("audit_ctx"); ok {
		audit = v.(*dto.AuditContextPayload)
	}
	traceID := ""
	if audit != nil {
		traceID = audit.TraceID
	}

	var req dto.SubmitReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorWithTrace(constant.CodeInvalidParams, traceID))
		return
	}
	req.Fields = c.PostFormMap("fields")

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorWithTrace(constant.CodeMissingFields, traceID))
		return
	}
	if fileHeader.Size > config.C.Proof.MaxUploadMB<<20 {
		c.JSON(http.StatusBadRequest, utils.ErrorWithTrace(constant.CodeInvalidParams, traceID))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorWithTrace(constant.CodeInvalidParams, traceID))
		return
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(),
		time.Duration(config.C.Checkout.SubmitTimeoutSec)*time.Second)
	defer cancel()

	resp, err := h.svc.Submit(ctx, slug, req, &service.ProofFile{
		Reader:      f,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, audit)
	if err != nil {
		code := constant.CodeOf(err)
		if audit != nil {
			audit.Status = "failed"
			audit.ErrorMsg = err.Error()
		}
		c.JSON(constant.HTTPStatus(code), utils.ErrorWithTrace(code, traceID))
		return
	}

	if audit != nil {
		audit.Status = "success"
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Validate 表单渲染前的链接可用性探测
func (h *CheckoutHandler) Validate(c *gin.Context) {
	c.JSON(http.StatusOK, utils.Success(h.svc.Validate(c.Param("slug"))))
}

// Countries 链接允许的国家列表
func (h *CheckoutHandler) Countries(c *gin.Context) {
	items, err := h.svc.Countries(c.Param("slug"))
	if err != nil {
		code := constant.CodeOf(err)
		c.JSON(constant.HTTPStatus(code), utils.Error(code))
		return
	}
	c.JSON(http.StatusOK, utils.Success(items))
}

// Methods 链接下指定国家的可用支付方式
func (h *CheckoutHandler) Methods(c *gin.Context) {
	items, err := h.svc.Methods(c.Param("slug"), c.Query("country"))
	if err != nil {
		code := constant.CodeOf(err)
		c.JSON(constant.HTTPStatus(code), utils.Error(code))
		return
	}
	c.JSON(http.StatusOK, utils.Success(items))
}
