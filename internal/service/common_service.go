package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"pcl-checkout-api/internal/dal"
	mainmodel "pcl-checkout-api/internal/model/main"
	paymentmodel "pcl-checkout-api/internal/model/payment"
	"pcl-checkout-api/internal/mq"
	rediskey "pcl-checkout-api/internal/types/redis-key"
)

// MainStore 主库读路径（链接注册表、商户目录、参考数据、支付方式）
type MainStore interface {
	GetLinkBySlug(slug string) (*mainmodel.CheckoutLink, error)
	GetMerchant(mid uint64) (*mainmodel.Merchant, error)
	GetCountry(code string) (*mainmodel.Country, error)
	ListCountries(codes []string) ([]mainmodel.Country, error)
	GetMethod(methodID, mid uint64) (*mainmodel.PaymentMethod, error)
	ListMethods(mid uint64, country string) ([]mainmodel.PaymentMethod, error)
}

// Ledger 支付账本
type Ledger interface {
	Insert(p *paymentmodel.Payment) error
	GetByID(id uint64) (*paymentmodel.Payment, error)
	List(mid uint64, status string, months, page, pageSize int) ([]paymentmodel.Payment, int64, error)
	Transition(p *paymentmodel.Payment, to paymentmodel.Status, operator, remark, traceID string) (bool, error)
}

// ProofStore 凭证对象存储
type ProofStore interface {
	Upload(ctx context.Context, merchantID uint64, file io.Reader, contentType string) (url, key string, err error)
	Remove(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string) (string, error)
}

// EventPublisher 异步事件出口
type EventPublisher interface {
	PaymentCreated(evt mq.PaymentCreatedEvent) error
	PaymentStatus(evt mq.PaymentStatusEvent) error
}

// LinkCache 收款链接热缓存
type LinkCache interface {
	Get(slug string) *mainmodel.CheckoutLink
	Set(slug string, link *mainmodel.CheckoutLink)
}

// SubmitGuard 提交幂等守卫
type SubmitGuard interface {
	Acquire(slug, token string) (bool, error)
}

// ProofFile 客户上传的凭证文件
type ProofFile struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

func mqCreatedEvent(p *paymentmodel.Payment, slug string) mq.PaymentCreatedEvent {
	return mq.PaymentCreatedEvent{
		PaymentID:  p.PaymentID,
		MerchantID: p.MID,
		LinkSlug:   slug,
		Customer:   p.CustomerName,
		Amount:     p.Amount.String(),
		Currency:   p.Currency,
		Country:    p.Country,
		CreatedAt:  time.Now().Unix(),
	}
}

// redisLinkCache 短TTL缓存，停用链接最晚在TTL窗口内生效
type redisLinkCache struct{ ttl time.Duration }

func (c *redisLinkCache) Get(slug string) *mainmodel.CheckoutLink {
	if dal.RedisClient == nil {
		return nil
	}
	s, _ := dal.RedisClient.Get(dal.RedisCtx, rediskey.CheckoutLinkKey(slug)).Result()
	if s == "" {
		return nil
	}
	var l mainmodel.CheckoutLink
	if err := json.Unmarshal([]byte(s), &l); err != nil {
		return nil
	}
	return &l
}

func (c *redisLinkCache) Set(slug string, link *mainmodel.CheckoutLink) {
	if dal.RedisClient == nil || link == nil {
		return
	}
	b, _ := json.Marshal(link)
	_ = dal.RedisClient.Set(dal.RedisCtx, rediskey.CheckoutLinkKey(slug), string(b), c.ttl).Err()
}

// redisSubmitGuard SETNX 幂等令牌，24小时窗口
type redisSubmitGuard struct{}

func (g *redisSubmitGuard) Acquire(slug, token string) (bool, error) {
	if dal.RedisClient == nil {
		return true, nil
	}
	return dal.RedisClient.SetNX(dal.RedisCtx, rediskey.SubmitTokenKey(slug, token), 1, 24*time.Hour).Result()
}
