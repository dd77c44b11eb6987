package dao

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pcl-checkout-api/internal/dal"
	paymentmodel "pcl-checkout-api/internal/model/payment"
	"pcl-checkout-api/internal/shard"
)

type PaymentDao struct{}

// Insert 写入支付记录，分表由雪花ID路由
func (r *PaymentDao) Insert(p *paymentmodel.Payment) error {
	table := shard.PaymentShard.TableForID(p.PaymentID)
	return dal.PaymentDB.Table(table).Create(p).Error
}

// GetByID 按支付ID读取，不存在返回 nil
func (r *PaymentDao) GetByID(id uint64) (*paymentmodel.Payment, error) {
	table := shard.PaymentShard.TableForID(id)
	var p paymentmodel.Payment
	err := dal.PaymentDB.Table(table).Where("payment_id=?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List 商户维度跨分片列表查询，按创建时间倒序，近 months 个月
func (r *PaymentDao) List(mid uint64, status string, months, page, pageSize int) ([]paymentmodel.Payment, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	tables := shard.PaymentShard.RecentTables(time.Now(), months)

	var out []paymentmodel.Payment
	var total int64
	for _, t := range tables {
		q := dal.PaymentDB.Table(t).Where("m_id=?", mid)
		if status != "" {
			q = q.Where("status=?", status)
		}
		var cnt int64
		if err := q.Count(&cnt).Error; err != nil {
			// 当月未建表时跳过该分片
			continue
		}
		total += cnt
		var rows []paymentmodel.Payment
		if err := q.Order("create_time DESC").Limit(page * pageSize).Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		out = append(out, rows...)
	}

	// 跨表归并后在内存截页
	sortByCreateDesc(out)
	start := (page - 1) * pageSize
	if start >= len(out) {
		return []paymentmodel.Payment{}, total, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func sortByCreateDesc(ps []paymentmodel.Payment) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0; j-- {
			a, b := ps[j-1].CreateTime, ps[j].CreateTime
			if a != nil && b != nil && a.Before(*b) {
				ps[j-1], ps[j] = ps[j], ps[j-1]
			} else {
				break
			}
		}
	}
}

// Transition 状态流转：同事务内 CAS 更新 + 审计日志。
// WHERE 带上旧状态做乐观并发控制，返回是否真正更新
func (r *PaymentDao) Transition(p *paymentmodel.Payment, to paymentmodel.Status, operator, remark, traceID string) (bool, error) {
	table := shard.PaymentShard.TableForID(p.PaymentID)
	logTable := shard.PaymentLogShard.TableForID(p.PaymentID)
	now := time.Now()

	updated := false
	err := dal.PaymentDB.Transaction(func(tx *gorm.DB) error {
		res := tx.Table(table).
			Where("payment_id=?", p.PaymentID).
			Where("m_id=?", p.MID).
			Where("status=?", p.Status).
			Updates(map[string]interface{}{
				"status":      to,
				"finish_time": now,
				"update_time": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		updated = true

		entry := paymentmodel.PaymentLog{
			PaymentID: p.PaymentID,
			MID:       p.MID,
			Event:     paymentmodel.EventTransition,
			OldStatus: string(p.Status),
			NewStatus: string(to),
			Operator:  operator,
			TraceID:   traceID,
			Remark:    remark,
			CreatedAt: now,
		}
		return tx.Table(logTable).Create(&entry).Error
	})
	if err != nil {
		return false, err
	}
	if updated {
		p.Status = to
		p.FinishTime = &now
		p.UpdateTime = &now
	}
	return updated, nil
}

// AppendLog 独立写一条审计日志（提交链路由中间件异步调用）
func (r *PaymentDao) AppendLog(entry *paymentmodel.PaymentLog) error {
	logTable := shard.PaymentLogShard.TableForID(entry.PaymentID)
	return dal.PaymentDB.Table(logTable).Create(entry).Error
}
