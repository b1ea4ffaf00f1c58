package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom         MessageType = "create_room"          // 创建房间
	MsgJoinRoom           MessageType = "join_room"            // 加入房间
	MsgLeaveRoom          MessageType = "leave_room"           // 离开房间
	MsgSelectMission      MessageType = "select_mission"       // 选择任务（仅主持人）
	MsgSetTargetSurvivors MessageType = "set_target_survivors" // 设置目标幸存人数（仅主持人）
	MsgStartGame          MessageType = "start_game"           // 开始游戏（仅主持人）

	// 游戏操作
	MsgAdvancePhase MessageType = "advance_phase" // 推进阶段（仅主持人）
	MsgToggleReady  MessageType = "toggle_ready"  // 切换投票准备状态
	MsgReveal       MessageType = "reveal"        // 公开一项角色特征
	MsgSubmitVote   MessageType = "submit_vote"   // 提交投票
	MsgUseAbility   MessageType = "use_ability"   // 使用能力
	MsgNextRound    MessageType = "next_round"    // 进入下一轮（仅主持人）

	// 信息查询
	MsgGetGameState     MessageType = "get_game_state"    // 获取游戏状态投影
	MsgGetMissions      MessageType = "get_missions"      // 获取任务列表
	MsgGetOwnCharacter  MessageType = "get_own_character" // 获取自己的角色卡
	MsgGetOwnAbilities  MessageType = "get_own_abilities" // 获取自己的能力列表
	MsgGenerateEpilogue MessageType = "generate_epilogue" // 生成任务结语（仅主持人）
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 房间相关
	MsgRoomCreated  MessageType = "room_created"  // 房间创建成功
	MsgRoomJoined   MessageType = "room_joined"   // 加入房间成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开
	MsgRoomDeleted  MessageType = "room_deleted"  // 房间已解散

	// 游戏流程
	MsgGameUpdated      MessageType = "game_updated"      // 游戏状态更新（统一广播）
	MsgGameStarted      MessageType = "game_started"      // 游戏开始
	MsgRevealed         MessageType = "revealed"          // 有玩家公开了特征
	MsgRoundEnded       MessageType = "round_ended"       // 本轮结束
	MsgAbilityUsed      MessageType = "ability_used"      // 能力使用结果（仅发起者可见）
	MsgEpilogueResult   MessageType = "epilogue_result"   // 结语生成结果
	MsgCharacterResult  MessageType = "character_result"  // 角色卡查询结果
	MsgAbilitiesResult  MessageType = "abilities_result"  // 能力列表查询结果
	MsgMissionsResult   MessageType = "missions_result"   // 任务列表查询结果
	MsgGameStateResult  MessageType = "game_state_result" // 游戏状态查询结果

	// 错误
	MsgError MessageType = "error" // 错误消息
)
