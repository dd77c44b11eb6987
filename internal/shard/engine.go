package shard

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/snowflake"
)

// ShardEngine 支付表分表路由器：按月分表 + 月内哈希分片
type ShardEngine struct {
	BaseTable  string
	ShardCount uint32
	Strategy   ShardStrategy
}

// NewShardEngine 创建分片引擎
func NewShardEngine(base string, count uint32) *ShardEngine {
	return &ShardEngine{
		BaseTable:  base,
		ShardCount: count,
		Strategy:   NewCRC32Strategy(count),
	}
}

// GetTable 根据支付ID和时间获取分表名
func (e *ShardEngine) GetTable(paymentID uint64, t time.Time) string {
	if t.IsZero() || t.Year() < 2000 {
		log.Printf("[ShardEngine] 非法时间: %v，使用当前时间", t)
		t = time.Now()
	}
	month := t.Format("200601")
	shard := e.Strategy.GetShard(paymentID)
	return fmt.Sprintf("%s_%s_p%d", e.BaseTable, month, shard)
}

// TableForID 仅凭支付ID路由分表。支付ID是雪花ID，
// 其内嵌的毫秒时间戳决定建表月份，读路径无需索引表
func (e *ShardEngine) TableForID(paymentID uint64) string {
	ms := snowflake.ID(paymentID).Time()
	return e.GetTable(paymentID, time.UnixMilli(ms))
}

// MonthTables 返回指定月份的全部分片表名，用于跨分片列表查询
func (e *ShardEngine) MonthTables(t time.Time) []string {
	month := t.Format("200601")
	out := make([]string, 0, e.ShardCount)
	for i := uint32(0); i < e.ShardCount; i++ {
		out = append(out, fmt.Sprintf("%s_%s_p%d", e.BaseTable, month, i))
	}
	return out
}

// RecentTables 返回最近 months 个月（含当月）的全部分片表名，新月在前
func (e *ShardEngine) RecentTables(now time.Time, months int) []string {
	if months <= 0 {
		months = 1
	}
	var out []string
	for i := 0; i < months; i++ {
		out = append(out, e.MonthTables(now.AddDate(0, -i, 0))...)
	}
	return out
}
