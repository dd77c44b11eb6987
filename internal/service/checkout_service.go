package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"pcl-checkout-api/internal/config"
	"pcl-checkout-api/internal/constant"
	"pcl-checkout-api/internal/dao"
	"pcl-checkout-api/internal/dto"
	"pcl-checkout-api/internal/idgen"
	"pcl-checkout-api/internal/logger"
	mainmodel "pcl-checkout-api/internal/model/main"
	paymentmodel "pcl-checkout-api/internal/model/payment"
	"pcl-checkout-api/internal/proof"
)

// CheckoutService 提交编排：校验全部通过后才产生副作用，
// 先传凭证后写账本，账本失败补偿删除凭证
type CheckoutService struct {
	main   MainStore
	ledger Ledger
	proof  ProofStore
	pub    EventPublisher
	cache  LinkCache
	guard  SubmitGuard
}

func NewCheckoutService(pub EventPublisher) *CheckoutService {
	return &CheckoutService{
		main:   &dao.MainDao{},
		ledger: &dao.PaymentDao{},
		proof:  proof.NewStore(),
		pub:    pub,
		cache:  &redisLinkCache{ttl: time.Duration(config.C.Checkout.LinkCacheTTLSec) * time.Second},
		guard:  &redisSubmitGuard{},
	}
}

// resolveLink 解析 slug。缺失与停用对外同样返回 LinkNotFound，
// 不泄露链接是否曾经存在
func (s *CheckoutService) resolveLink(slug string) (*mainmodel.CheckoutLink, error) {
	if s.cache != nil {
		if l := s.cache.Get(slug); l != nil {
			if !l.IsActive() {
				return nil, constant.NewError(constant.CodeLinkNotFound)
			}
			return l, nil
		}
	}
	l, err := s.main.GetLinkBySlug(slug)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if l == nil || !l.IsActive() {
		return nil, constant.NewError(constant.CodeLinkNotFound)
	}
	if s.cache != nil {
		s.cache.Set(slug, l)
	}
	return l, nil
}

// Submit 处理一次客户提交，见 §提交协议：
// 1) slug 解析 2) 国家→币种 3) 支付方式匹配 4) 必填校验
// 5) 凭证上传 6) 账本写入（失败则补偿删除凭证）
func (s *CheckoutService) Submit(ctx context.Context, slug string, req dto.SubmitReq, file *ProofFile, audit *dto.AuditContextPayload) (dto.SubmitResp, error) {
	var resp dto.SubmitResp

	// 1) 链接解析与客户端状态校验
	link, err := s.resolveLink(slug)
	if err != nil {
		return resp, err
	}
	if req.CheckoutLinkID != "" {
		linkID, parseErr := strconv.ParseUint(req.CheckoutLinkID, 10, 64)
		if parseErr != nil || linkID != link.LinkID {
			return resp, constant.NewError(constant.CodeLinkMismatch)
		}
	}

	// 2) 国家→币种解析，币种绝不信任客户端
	countryCode := strings.ToUpper(strings.TrimSpace(req.Country))
	if countryCode == "" || !link.AllowsCountry(countryCode) {
		return resp, constant.NewError(constant.CodeInvalidCountry)
	}
	country, err := s.main.GetCountry(countryCode)
	if err != nil {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}
	if country == nil {
		return resp, constant.NewError(constant.CodeInvalidCountry)
	}
	if country.Currency == "" {
		return resp, constant.NewError(constant.CodeCurrencyNotConfigured)
	}

	// 3) 支付方式匹配：归属商户、启用、适用国家
	methodID, parseErr := strconv.ParseUint(req.PaymentMethodID, 10, 64)
	if parseErr != nil {
		return resp, constant.NewError(constant.CodeInvalidMethod)
	}
	method, err := s.main.GetMethod(methodID, link.MID)
	if err != nil {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}
	if method == nil || !method.IsActive() || !method.AppliesTo(countryCode) {
		return resp, constant.NewError(constant.CodeInvalidMethod)
	}
	if vErr := method.Validate(); vErr != nil {
		// 配置期就该拦下的脏数据，提交期兜底拒绝
		logger.Checkout.Warnf("method %d config invalid: %v", method.MethodID, vErr)
		return resp, constant.NewError(constant.CodeInvalidMethod)
	}

	// 4) 必填校验，任何副作用之前完成
	if strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.CustomerEmail) == "" ||
		strings.TrimSpace(req.Amount) == "" ||
		file == nil || file.Reader == nil {
		return resp, constant.NewError(constant.CodeMissingFields)
	}
	if !proof.AllowedContentType(file.ContentType) {
		return resp, constant.NewError(constant.CodeMissingFields)
	}
	fieldValues := paymentmodel.FieldValues{}
	if method.Type == mainmodel.MethodManual {
		for _, f := range method.CustomFields {
			v := strings.TrimSpace(req.Fields[f.Label])
			if f.Required && v == "" {
				return resp, constant.NewError(constant.CodeMissingFields)
			}
			if v != "" {
				fieldValues[f.Label] = v
			}
		}
	}

	amount, amtErr := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if amtErr != nil || amount.Cmp(decimal.Zero) <= 0 {
		return resp, constant.NewError(constant.CodeParamsFormatError)
	}
	if link.AmountPolicy == mainmodel.AmountPolicyFixed {
		if link.FixedAmount == nil || !amount.Equal(*link.FixedAmount) {
			return resp, constant.NewError(constant.CodeAmountMismatch)
		}
	}

	// 幂等令牌（可选）：重复令牌在副作用之前拒绝
	if req.ClientToken != "" && s.guard != nil {
		ok, gErr := s.guard.Acquire(slug, req.ClientToken)
		if gErr != nil {
			return resp, constant.NewError(constant.CodeRedisError)
		}
		if !ok {
			return resp, constant.NewError(constant.CodeDuplicateSubmission)
		}
	}

	// 5) 凭证上传，对象键按商户隔离。客户端断开时 ctx 取消，
	// 上传失败直接返回，绝不落一条没有凭证的账本记录
	proofURL, proofKey, upErr := s.proof.Upload(ctx, link.MID, file.Reader, file.ContentType)
	if upErr != nil {
		logger.Checkout.Errorf("proof upload failed: slug=%s err=%v", slug, upErr)
		return resp, constant.NewError(constant.CodeUploadFailed)
	}

	// 6) 账本写入
	pid := idgen.New()
	p := &paymentmodel.Payment{
		PaymentID:     pid,
		MID:           link.MID,
		LinkID:        link.LinkID,
		MethodID:      method.MethodID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Amount:        amount,
		Currency:      country.Currency,
		Country:       countryCode,
		ProofURL:      proofURL,
		ProofKey:      proofKey,
		Status:        paymentmodel.StatusPendingVerification,
	}
	if len(fieldValues) > 0 {
		p.FieldValues = fieldValues
	}
	if audit != nil {
		p.ClientIP = audit.IP
	}
	if err := s.ledger.Insert(p); err != nil {
		// 7) 补偿：删掉刚传的凭证，不留孤儿对象。
		// 补偿失败只记日志，对外仍返回账本错误
		if rmErr := s.proof.Remove(context.Background(), proofKey); rmErr != nil {
			logger.Checkout.Errorf("compensating proof delete failed: key=%s err=%v", proofKey, rmErr)
		}
		logger.Checkout.Errorf("ledger insert failed: slug=%s payment=%d err=%v", slug, pid, err)
		return resp, constant.NewError(constant.CodeLedgerWriteFailed)
	}

	if audit != nil {
		audit.MerchantID = link.MID
		audit.PaymentID = pid
		audit.CreatedAt = time.Now()
	}

	// 异步通知商户，失败不影响提交结果
	if s.pub != nil {
		_ = s.pub.PaymentCreated(mqCreatedEvent(p, slug))
	}

	resp.PaymentID = strconv.FormatUint(pid, 10)
	resp.Status = string(p.Status)
	logger.Checkout.Infof("payment created: id=%d merchant=%d link=%s amount=%s %s",
		pid, link.MID, slug, amount.String(), country.Currency)
	return resp, nil
}

// Validate 链接可用性探测，表单渲染前调用
func (s *CheckoutService) Validate(slug string) dto.ValidateResp {
	link, err := s.resolveLink(slug)
	if err != nil || link == nil {
		return dto.ValidateResp{Valid: false}
	}
	return dto.ValidateResp{Valid: true, Title: link.Title}
}

// Countries 链接允许的国家投影
func (s *CheckoutService) Countries(slug string) ([]dto.CountryItem, error) {
	link, err := s.resolveLink(slug)
	if err != nil {
		return nil, err
	}
	countries, err := s.main.ListCountries(link.AllowedCountries)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	out := make([]dto.CountryItem, 0, len(countries))
	for _, c := range countries {
		out = append(out, dto.CountryItem{Code: c.Code, Name: c.NameEn, Currency: c.Currency})
	}
	return out, nil
}

// Methods 链接下某国家可用的支付方式投影，配置非法的方式不对外暴露
func (s *CheckoutService) Methods(slug, country string) ([]dto.MethodItem, error) {
	link, err := s.resolveLink(slug)
	if err != nil {
		return nil, err
	}
	countryCode := strings.ToUpper(strings.TrimSpace(country))
	if countryCode == "" || !link.AllowsCountry(countryCode) {
		return nil, constant.NewError(constant.CodeInvalidCountry)
	}
	methods, err := s.main.ListMethods(link.MID, countryCode)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	out := make([]dto.MethodItem, 0, len(methods))
	for _, m := range methods {
		if vErr := m.Validate(); vErr != nil {
			logger.Checkout.Warnf("skip invalid method %d: %v", m.MethodID, vErr)
			continue
		}
		var item dto.MethodItem
		_ = copier.Copy(&item, &m)
		item.MethodID = strconv.FormatUint(m.MethodID, 10)
		if m.PayURL != nil {
			item.PayURL = *m.PayURL
		}
		if m.Instructions != nil {
			item.Instructions = *m.Instructions
		}
		out = append(out, item)
	}
	return out, nil
}
