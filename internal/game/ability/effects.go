package ability

import (
	"fmt"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
)

// Overlays 能力在本轮叠加的临时效果
// block_technique 与治疗直接修改角色卡，不经过这里
type Overlays struct {
	BlockedVotes     map[string]bool   // 被封锁投票资格的玩家
	ReflectedVotes   map[string]string // 投票被反弹的玩家 -> 施放者
	ProtectedPlayers map[string]bool   // 受保护免于淘汰的玩家
	DoubleVoteDamage map[string]string // 投票伤害翻倍的目标 -> 施放者
}

// NewOverlays 创建空的效果叠加层
func NewOverlays() *Overlays {
	return &Overlays{
		BlockedVotes:     make(map[string]bool),
		ReflectedVotes:   make(map[string]string),
		ProtectedPlayers: make(map[string]bool),
		DoubleVoteDamage: make(map[string]string),
	}
}

// Clear 清空全部临时效果，回合切换时调用
func (o *Overlays) Clear() {
	o.BlockedVotes = make(map[string]bool)
	o.ReflectedVotes = make(map[string]string)
	o.ProtectedPlayers = make(map[string]bool)
	o.DoubleVoteDamage = make(map[string]string)
}

// Disclosure 洞察能力向施放者披露的特征
type Disclosure struct {
	PlayerID      string `json:"playerId"`
	CategoryIndex int    `json:"categoryIndex"`
	CategoryName  string `json:"categoryName"`
	Value         string `json:"value"`
}

// Result 能力生效结果
type Result struct {
	Message    string
	Disclosure *Disclosure // 仅洞察能力返回
}

// Validate 校验能力使用的通用前提
// 目标是否存在、能力是否持有、阶段是否允许由房间层校验
func Validate(a *Active, casterID, targetID string, eliminated map[string]bool) error {
	if eliminated[casterID] {
		return apperrors.ErrCasterEliminated
	}
	if a.UsesRemaining <= 0 {
		return apperrors.ErrAbilityExhausted
	}
	if a.RequiresTarget && targetID == "" {
		return apperrors.ErrAbilityNeedTarget
	}
	// 转生以外的能力不能以已淘汰玩家为目标
	if targetID != "" && a.Effect != EffectResurrect && eliminated[targetID] {
		return apperrors.ErrTargetEliminated
	}
	return nil
}

// Apply 施加能力效果
// 调用方负责扣减使用次数并记录激活历史
func Apply(a *Active, casterID, targetID string, nameOf func(string) string, overlays *Overlays, cards map[string]*character.Card) (*Result, error) {
	switch a.Effect {
	case EffectHealSelf:
		card, ok := cards[casterID]
		if !ok {
			return nil, apperrors.ErrCharacterNotFound
		}
		card.CurrentState.Value = character.StateHealthy
		return &Result{Message: fmt.Sprintf("%s 的状态恢复为\"%s\"", nameOf(casterID), character.StateHealthy)}, nil

	case EffectHealOther:
		card, ok := cards[targetID]
		if !ok {
			return nil, apperrors.ErrCharacterNotFound
		}
		card.CurrentState.Value = character.StateHealthy
		return &Result{Message: fmt.Sprintf("%s 的状态恢复为\"%s\"", nameOf(targetID), character.StateHealthy)}, nil

	case EffectBlockTechnique:
		card, ok := cards[targetID]
		if !ok {
			return nil, apperrors.ErrCharacterNotFound
		}
		card.CursedTechnique.Value = character.TechniqueSuppressed
		return &Result{Message: fmt.Sprintf("%s 的术式已被封印", nameOf(targetID))}, nil

	case EffectBlockVote:
		overlays.BlockedVotes[targetID] = true
		return &Result{Message: fmt.Sprintf("%s 本轮无法投票", nameOf(targetID))}, nil

	case EffectRevealInfo:
		card, ok := cards[targetID]
		if !ok {
			return nil, apperrors.ErrCharacterNotFound
		}
		// 披露第一项未公开的特征，但不翻转公开标记
		index := card.FirstHidden()
		if index < 0 {
			return &Result{Message: fmt.Sprintf("%s 的所有特征均已公开", nameOf(targetID))}, nil
		}
		return &Result{
			Message: fmt.Sprintf("窥视了 %s 的隐藏特征", nameOf(targetID)),
			Disclosure: &Disclosure{
				PlayerID:      targetID,
				CategoryIndex: index,
				CategoryName:  character.CategoryName(index),
				Value:         card.Trait(index).Format(),
			},
		}, nil

	case EffectResurrect:
		// 被动能力，淘汰结算时自动触发
		return &Result{Message: "转生将在被淘汰时自动生效"}, nil

	case EffectDoubleVoteDamage:
		overlays.DoubleVoteDamage[targetID] = casterID
		return &Result{Message: fmt.Sprintf("针对 %s 的投票伤害将翻倍", nameOf(targetID))}, nil

	case EffectProtectSelf:
		overlays.ProtectedPlayers[casterID] = true
		return &Result{Message: fmt.Sprintf("%s 本轮免于被淘汰", nameOf(casterID))}, nil

	case EffectReflectVote:
		overlays.ReflectedVotes[targetID] = casterID
		return &Result{Message: fmt.Sprintf("%s 的投票将被反弹到自己身上", nameOf(targetID))}, nil

	default:
		return nil, fmt.Errorf("未知的能力效果: %s", a.Effect)
	}
}
