package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	HostName string `json:"host_name"`
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// SelectMissionPayload 选择任务请求
type SelectMissionPayload struct {
	MissionID string `json:"mission_id"`
}

// SetTargetSurvivorsPayload 设置目标幸存人数请求
type SetTargetSurvivorsPayload struct {
	TargetSurvivors int `json:"target_survivors"`
}

// RevealPayload 公开角色特征请求
type RevealPayload struct {
	CategoryIndex int `json:"category_index"`
}

// SubmitVotePayload 投票请求，TargetID 为空表示弃票
type SubmitVotePayload struct {
	TargetID string `json:"target_id,omitempty"`
	Skip     bool   `json:"skip,omitempty"`
}

// UseAbilityPayload 使用能力请求
type UseAbilityPayload struct {
	AbilityID string `json:"ability_id"`
	TargetID  string `json:"target_id,omitempty"`
}

// GetMissionsPayload 获取任务列表请求
type GetMissionsPayload struct {
	Difficulty []string `json:"difficulty,omitempty"` // 可选的难度过滤
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	ClientID string `json:"client_id"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode  string        `json:"room_code"`
	PlayerID  string        `json:"player_id"`
	GameState *GameStateDTO `json:"game_state,omitempty"`
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// RoomDeletedPayload 房间解散通知
type RoomDeletedPayload struct {
	RoomCode string `json:"room_code"`
}

// GameStartedPayload 游戏开始通知
type GameStartedPayload struct {
	Round int    `json:"round"`
	Phase string `json:"phase"`
}

// RoundEndedPayload 本轮结束通知
type RoundEndedPayload struct {
	EliminatedID string `json:"eliminated_id,omitempty"`
	GameEnded    bool   `json:"game_ended"`
}

// AbilityUsedPayload 能力使用结果（仅发给发起者）
type AbilityUsedPayload struct {
	Message  string        `json:"message"`
	Revealed *RevealedInfo `json:"revealed,omitempty"` // reveal_info 类能力的一次性情报
}

// EpilogueResultPayload 结语生成结果
type EpilogueResultPayload struct {
	Epilogue string `json:"epilogue"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"` // 稳定的错误原因标识
	Message string `json:"message"`
}

// --- 数据传输对象 ---

// PlayerInfo 玩家公开信息（不含角色卡内容）
type PlayerInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"` // host / participant
	Connected   bool   `json:"connected"`
	HasRevealed bool   `json:"has_revealed"`
	HasVoted    bool   `json:"has_voted"`
	ReadyToVote bool   `json:"ready_to_vote"`
}

// RevealedInfo 一条已公开的特征记录
type RevealedInfo struct {
	PlayerID      string `json:"player_id"`
	CategoryIndex int    `json:"category_index"`
	CategoryName  string `json:"category_name"`
	Value         string `json:"value"`
	Round         int    `json:"round"`
}

// VoteResultInfo 最近一次计票结果
type VoteResultInfo struct {
	EliminatedID string         `json:"eliminated_id,omitempty"`
	VoteCounts   map[string]int `json:"vote_counts"`
	Tie          bool           `json:"tie"`
}

// MissionInfo 任务信息
type MissionInfo struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Threat        string   `json:"threat"`
	Objectives    []string `json:"objectives"`
	DangerFactors []string `json:"danger_factors"`
	Difficulty    string   `json:"difficulty"`
	IsCustom      bool     `json:"is_custom"`
}

// CategoryInfo 角色卡中的一个特征栏位
type CategoryInfo struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Revealed bool   `json:"revealed"`
	Value    string `json:"value"`
}

// CharacterCardDTO 完整角色卡（仅发给持有者本人）
type CharacterCardDTO struct {
	Categories []CategoryInfo `json:"categories"`
}

// AbilityInfo 一项已激活的能力
type AbilityInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Effect        string `json:"effect"`
	UsesRemaining int    `json:"uses_remaining"`
	MaxUses       int    `json:"max_uses"`
	RequiresTarget bool  `json:"requires_target"`
}

// GameStateDTO 游戏状态投影（可安全广播给整个房间）
type GameStateDTO struct {
	RoomCode         string          `json:"room_code"`
	Phase            string          `json:"phase"`
	Round            int             `json:"round"`
	Players          []PlayerInfo    `json:"players"`
	HostID           string          `json:"host_id"`
	SelectedMission  *MissionInfo    `json:"selected_mission,omitempty"`
	GameStarted      bool            `json:"game_started"`
	GameEnded        bool            `json:"game_ended"`
	EliminatedIDs    []string        `json:"eliminated_ids"`
	StrikeTeamSize   int             `json:"strike_team_size"`
	TargetSurvivors  int             `json:"target_survivors"`
	Revealed         []RevealedInfo  `json:"revealed"`
	ConsecutiveSkips int             `json:"consecutive_skips"`
	LastVoteResult   *VoteResultInfo `json:"last_vote_result,omitempty"`
	Epilogue         string          `json:"epilogue,omitempty"`
}
