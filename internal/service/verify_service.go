package service

import (
	"context"
	"strconv"
	"time"

	"github.com/jinzhu/copier"

	"pcl-checkout-api/internal/config"
	"pcl-checkout-api/internal/constant"
	"pcl-checkout-api/internal/dao"
	"pcl-checkout-api/internal/dto"
	"pcl-checkout-api/internal/logger"
	paymentmodel "pcl-checkout-api/internal/model/payment"
	"pcl-checkout-api/internal/mq"
	"pcl-checkout-api/internal/proof"
)

// VerifyService 商户核销：账本状态流转的薄封装，
// 租户归属在这里显式校验，不依赖底层存储策略兜底
type VerifyService struct {
	ledger Ledger
	proof  ProofStore
	pub    EventPublisher
}

func NewVerifyService(pub EventPublisher) *VerifyService {
	return &VerifyService{
		ledger: &dao.PaymentDao{},
		proof:  proof.NewStore(),
		pub:    pub,
	}
}

// Transition 执行一次状态流转。归属不符返回 NotPaymentOwner，
// 状态图不可达返回 InvalidTransition；CAS 丢失竞争同样按 InvalidTransition 拒绝
func (s *VerifyService) Transition(merchantID, paymentID uint64, target, operator, remark, traceID string) (*dto.PaymentItem, error) {
	to := paymentmodel.Status(target)
	if !to.Valid() {
		return nil, constant.NewError(constant.CodeInvalidTransition)
	}

	p, err := s.ledger.GetByID(paymentID)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if p == nil {
		return nil, constant.NewError(constant.CodePaymentNotFound)
	}
	if p.MID != merchantID {
		logger.Verify.Warnf("tenant mismatch: payment=%d owner=%d caller=%d", paymentID, p.MID, merchantID)
		return nil, constant.NewError(constant.CodeNotPaymentOwner)
	}
	if !p.Status.CanTransitionTo(to) {
		return nil, constant.NewError(constant.CodeInvalidTransition)
	}

	oldStatus := p.Status
	updated, err := s.ledger.Transition(p, to, operator, remark, traceID)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if !updated {
		return nil, constant.NewError(constant.CodeInvalidTransition)
	}

	if s.pub != nil {
		_ = s.pub.PaymentStatus(mq.PaymentStatusEvent{
			PaymentID:  p.PaymentID,
			MerchantID: p.MID,
			OldStatus:  string(oldStatus),
			NewStatus:  string(to),
			Operator:   operator,
			ChangedAt:  time.Now().Unix(),
		})
	}
	logger.Verify.Infof("payment %d: %s -> %s by merchant %d", paymentID, oldStatus, to, merchantID)

	item := s.toItem(p, false)
	return &item, nil
}

// Get 查询单条支付记录，附带限时可读的凭证URL
func (s *VerifyService) Get(merchantID, paymentID uint64) (*dto.PaymentItem, error) {
	p, err := s.ledger.GetByID(paymentID)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if p == nil {
		return nil, constant.NewError(constant.CodePaymentNotFound)
	}
	if p.MID != merchantID {
		return nil, constant.NewError(constant.CodeNotPaymentOwner)
	}
	item := s.toItem(p, true)
	return &item, nil
}

// List 商户支付列表
func (s *VerifyService) List(merchantID uint64, req dto.ListPaymentsReq) (dto.PageResult, error) {
	var result dto.PageResult
	if req.Status != "" && !paymentmodel.Status(req.Status).Valid() {
		return result, constant.NewError(constant.CodeInvalidParams)
	}
	rows, total, err := s.ledger.List(merchantID, req.Status, config.C.Checkout.ListMonths, req.Page, req.PageSize)
	if err != nil {
		return result, constant.NewError(constant.CodeDatabaseError)
	}
	result.Total = total
	result.Items = make([]dto.PaymentItem, 0, len(rows))
	for i := range rows {
		result.Items = append(result.Items, s.toItem(&rows[i], false))
	}
	return result, nil
}

func (s *VerifyService) toItem(p *paymentmodel.Payment, signProof bool) dto.PaymentItem {
	var item dto.PaymentItem
	_ = copier.Copy(&item, p)
	item.PaymentID = strconv.FormatUint(p.PaymentID, 10)
	item.LinkID = strconv.FormatUint(p.LinkID, 10)
	item.MethodID = strconv.FormatUint(p.MethodID, 10)
	item.Amount = p.Amount.String()
	item.Status = string(p.Status)
	item.FieldValues = p.FieldValues
	if signProof && s.proof != nil && p.ProofKey != "" {
		if signed, err := s.proof.SignedURL(context.Background(), p.ProofKey); err == nil {
			item.SignedProofURL = signed
		}
	}
	return item
}
