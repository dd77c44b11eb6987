package paymentmodel

// Status 支付记录状态。状态只能沿状态图单向流转，
// 终态永久有效，failed 后重新收款必须新建记录
type Status string

const (
	StatusPendingVerification Status = "pending_verification"
	StatusCompleted           Status = "completed"
	StatusFailed              Status = "failed"
	StatusRefunded            Status = "refunded"
)

// 状态图：pending_verification → {completed, failed}，completed → refunded
var transitions = map[Status][]Status{
	StatusPendingVerification: {StatusCompleted, StatusFailed},
	StatusCompleted:           {StatusRefunded},
	StatusFailed:              {},
	StatusRefunded:            {},
}

// Valid 是否为已知状态
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal 是否为没有任何出边的状态
func (s Status) Terminal() bool {
	return s == StatusFailed || s == StatusRefunded
}

// CanTransitionTo 目标状态是否从当前状态可达
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
