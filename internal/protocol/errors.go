package protocol

// 错误码
const (
	ErrCodeUnknown        = 1000
	ErrCodeInvalidMsg     = 1001
	ErrCodeNotFound       = 2001 // 房间/玩家/目标/任务不存在
	ErrCodeForbidden      = 2002 // 非主持人执行主持人操作
	ErrCodeInvalidPhase   = 2003 // 当前阶段不允许该操作
	ErrCodeAlreadyActed   = 2004 // 本轮已公开/已投票
	ErrCodeInvalidTarget  = 2005 // 自投、目标已淘汰、目标不存在、禁止弃票
	ErrCodeCapacity       = 2006 // 房间已满、房间数达到上限、幸存人数越界
	ErrCodeAbilityBlocked = 2007 // 能力未持有/已耗尽/阶段错误
)

// 稳定的错误原因标识，跨版本保持不变，客户端按此分支
const (
	ReasonNotFound           = "not_found"
	ReasonForbidden          = "forbidden"
	ReasonInvalidPhase       = "invalid_phase"
	ReasonAlreadyActed       = "already_acted"
	ReasonInvalidTarget      = "invalid_target"
	ReasonCapacity           = "capacity"
	ReasonAbilityUnavailable = "ability_unavailable"
)

// ErrorMessages 错误码对应的默认消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:        "未知错误",
	ErrCodeInvalidMsg:     "无效的消息格式",
	ErrCodeNotFound:       "目标不存在",
	ErrCodeForbidden:      "只有主持人可以执行该操作",
	ErrCodeInvalidPhase:   "当前阶段不允许该操作",
	ErrCodeAlreadyActed:   "本轮已执行过该操作",
	ErrCodeInvalidTarget:  "无效的目标",
	ErrCodeCapacity:       "已达到数量上限",
	ErrCodeAbilityBlocked: "能力当前不可用",
}
