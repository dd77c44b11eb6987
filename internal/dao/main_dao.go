package dao

import (
	"errors"

	"gorm.io/gorm"

	"pcl-checkout-api/internal/dal"
	mainmodel "pcl-checkout-api/internal/model/main"
)

type MainDao struct{}

// GetLinkBySlug 按 slug 查询收款链接，不存在返回 nil
func (r *MainDao) GetLinkBySlug(slug string) (*mainmodel.CheckoutLink, error) {
	var l mainmodel.CheckoutLink
	err := dal.MainDB.Where("slug=?", slug).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *MainDao) GetMerchant(mid uint64) (*mainmodel.Merchant, error) {
	var m mainmodel.Merchant
	err := dal.MainDB.Where("merchant_id=?", mid).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetCountry 查询国家参考数据，缺失返回 nil 而不是默认值
func (r *MainDao) GetCountry(code string) (*mainmodel.Country, error) {
	var c mainmodel.Country
	err := dal.MainDB.Where("code=?", code).Where("status=?", 1).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCountries 查询启用国家，codes 非空时限定在该集合内
func (r *MainDao) ListCountries(codes []string) ([]mainmodel.Country, error) {
	var out []mainmodel.Country
	q := dal.MainDB.Where("status=?", 1)
	if len(codes) > 0 {
		q = q.Where("code IN ?", codes)
	}
	if err := q.Order("code").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetMethod 查询商户支付方式，归属不符同样视为不存在
func (r *MainDao) GetMethod(methodID, mid uint64) (*mainmodel.PaymentMethod, error) {
	var m mainmodel.PaymentMethod
	err := dal.MainDB.Where("method_id=?", methodID).Where("m_id=?", mid).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMethods 查询商户启用的支付方式并按国家过滤。
// countries 是 JSON 列，匹配在内存完成
func (r *MainDao) ListMethods(mid uint64, country string) ([]mainmodel.PaymentMethod, error) {
	var all []mainmodel.PaymentMethod
	if err := dal.MainDB.Where("m_id=?", mid).Where("status=?", 1).Find(&all).Error; err != nil {
		return nil, err
	}
	out := make([]mainmodel.PaymentMethod, 0, len(all))
	for _, m := range all {
		if m.AppliesTo(country) {
			out = append(out, m)
		}
	}
	return out, nil
}
