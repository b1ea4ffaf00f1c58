package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

const (
	roomKeyPrefix = "room:"
	roomTTL       = 2 * time.Hour
)

// PlayerData 玩家快照
type PlayerData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Connected bool   `json:"connected"`
}

// RoomData 房间快照，用于 Redis 持久化
type RoomData struct {
	Code             string                     `json:"code"`
	HostID           string                     `json:"host_id"`
	Phase            string                     `json:"phase"`
	Round            int                        `json:"round"`
	GameStarted      bool                       `json:"game_started"`
	GameEnded        bool                       `json:"game_ended"`
	MissionID        string                     `json:"mission_id,omitempty"`
	PlayerOrder      []string                   `json:"player_order"`
	Players          []PlayerData               `json:"players"`
	Eliminated       []string                   `json:"eliminated"`
	TargetSurvivors  int                        `json:"target_survivors"`
	StrikeTeamSize   int                        `json:"strike_team_size"`
	ConsecutiveSkips int                        `json:"consecutive_skips"`
	Epilogue         string                     `json:"epilogue,omitempty"`
	Cards            map[string]*character.Card `json:"cards,omitempty"`
	Revealed         []protocol.RevealedInfo    `json:"revealed,omitempty"`
	CreatedAt        int64                      `json:"created_at"`
}

// RedisStore 基于 Redis 的房间快照存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRoom 保存房间快照，带两小时过期时间
func (s *RedisStore) SaveRoom(ctx context.Context, code string, data *RoomData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化房间快照失败 %s: %w", code, err)
	}
	if err := s.client.Set(ctx, roomKeyPrefix+code, payload, roomTTL).Err(); err != nil {
		log.Printf("[ERROR] 保存房间快照失败 %s: %v", code, err)
		return err
	}
	return nil
}

// LoadRoom 读取房间快照，不存在时返回 nil
func (s *RedisStore) LoadRoom(ctx context.Context, code string) (*RoomData, error) {
	payload, err := s.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取房间快照失败 %s: %w", code, err)
	}

	var data RoomData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("解析房间快照失败 %s: %w", code, err)
	}
	return &data, nil
}

// DeleteRoom 删除房间快照
func (s *RedisStore) DeleteRoom(ctx context.Context, code string) error {
	if err := s.client.Del(ctx, roomKeyPrefix+code).Err(); err != nil {
		log.Printf("[ERROR] 删除房间快照失败 %s: %v", code, err)
		return err
	}
	return nil
}
