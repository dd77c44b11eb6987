package shard

var (
	PaymentShard    *ShardEngine
	PaymentLogShard *ShardEngine
)

// InitShardEngines 初始化所有分片引擎
func InitShardEngines(count uint32) {
	PaymentShard = NewShardEngine("p_payment", count)
	PaymentLogShard = NewShardEngine("p_payment_log", count)
}
