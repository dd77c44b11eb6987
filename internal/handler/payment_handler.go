package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pcl-checkout-api/internal/constant"
	"pcl-checkout-api/internal/dto"
	"pcl-checkout-api/internal/mq"
	"pcl-checkout-api/internal/service"
	"pcl-checkout-api/internal/utils"
)

// PaymentHandler 商户核销API处理器
type PaymentHandler struct{ svc *service.VerifyService }

func NewPaymentHandler() *PaymentHandler {
	pub := mq.NewPublisher()
	return &PaymentHandler{svc: service.NewVerifyService(pub)}
}

// List 商户支付列表
func (h *PaymentHandler) List(c *gin.Context) {
	mid := c.GetUint64("merchant_id")

	var req dto.ListPaymentsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	result, err := h.svc.List(mid, req)
	if err != nil {
		code := constant.CodeOf(err)
		c.JSON(constant.HTTPStatus(code), utils.Error(code))
		return
	}
	c.JSON(http.StatusOK, utils.Success(result))
}

// Get 查询单条支付记录
func (h *PaymentHandler) Get(c *gin.Context) {
	mid := c.GetUint64("merchant_id")
	pid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	item, err := h.svc.Get(mid, pid)
	if err != nil {
		code := constant.CodeOf(err)
		c.JSON(constant.HTTPStatus(code), utils.Error(code))
		return
	}
	c.JSON(http.StatusOK, utils.Success(item))
}

// Transition 商户核销状态流转
func (h *PaymentHandler) Transition(c *gin.Context) {
	mid := c.GetUint64("merchant_id")
	operator := c.GetString("merchant_name")
	pid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}

	var req dto.TransitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeMissingParams))
		return
	}

	traceID := uuid.New().String()
	item, err := h.svc.Transition(mid, pid, req.Status, operator, req.Remark, traceID)
	if err != nil {
		code := constant.CodeOf(err)
		c.JSON(constant.HTTPStatus(code), utils.ErrorWithTrace(code, traceID))
		return
	}
	c.JSON(http.StatusOK, utils.Success(item))
}
