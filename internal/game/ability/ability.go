package ability

import (
	"github.com/google/uuid"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
)

// EffectKind 能力效果类别，封闭枚举
type EffectKind string

const (
	EffectHealSelf         EffectKind = "heal_self"
	EffectHealOther        EffectKind = "heal_other"
	EffectBlockTechnique   EffectKind = "block_technique"
	EffectBlockVote        EffectKind = "block_vote"
	EffectRevealInfo       EffectKind = "reveal_info"
	EffectResurrect        EffectKind = "resurrect"
	EffectDoubleVoteDamage EffectKind = "double_vote_damage"
	EffectProtectSelf      EffectKind = "protect_self"
	EffectReflectVote      EffectKind = "reflect_vote"
)

// Definition 能力定义：由角色卡上的特定特征触发
type Definition struct {
	Name              string
	Description       string
	Effect            EffectKind
	RequiredAttribute string
	Category          int // 触发特征所在的类别序号
	RequiresTarget    bool
	MaxUses           int
}

// 全部能力定义
var definitions = []Definition{
	{
		Name:              "治愈",
		Description:       "将任意玩家的当前状态恢复为\"健康\"",
		Effect:            EffectHealOther,
		RequiredAttribute: character.AttrReverseTechniqueOther,
		Category:          character.CategoryGeneralTechniques,
		RequiresTarget:    true,
		MaxUses:           1,
	},
	{
		Name:              "自愈",
		Description:       "将自己的当前状态恢复为\"健康\"",
		Effect:            EffectHealSelf,
		RequiredAttribute: character.AttrReverseTechniqueSelf,
		Category:          character.CategoryGeneralTechniques,
		RequiresTarget:    false,
		MaxUses:           1,
	},
	{
		Name:              "术式压制",
		Description:       "封印任意玩家的术式",
		Effect:            EffectBlockTechnique,
		RequiredAttribute: character.AttrInvertedSpear,
		Category:          character.CategoryCursedTools,
		RequiresTarget:    true,
		MaxUses:           1,
	},
	{
		Name:              "束缚",
		Description:       "封锁一名玩家本轮的投票资格",
		Effect:            EffectBlockVote,
		RequiredAttribute: character.AttrThousandMileChain,
		Category:          character.CategoryCursedTools,
		RequiresTarget:    true,
		MaxUses:           1,
	},
	{
		Name:              "洞察",
		Description:       "窥视任意玩家的一项隐藏特征（仅自己可见）",
		Effect:            EffectRevealInfo,
		RequiredAttribute: character.AttrSixEyes,
		Category:          character.CategorySpecialTraits,
		RequiresTarget:    true,
		MaxUses:           1,
	},
	{
		Name:              "转生",
		Description:       "被淘汰时自动复活并恢复健康",
		Effect:            EffectResurrect,
		RequiredAttribute: character.AttrRebornSorcerer,
		Category:          character.CategorySpecialTraits,
		RequiresTarget:    false,
		MaxUses:           1,
	},
	{
		Name:              "黑闪一击",
		Description:       "使针对选定玩家的投票伤害翻倍",
		Effect:            EffectDoubleVoteDamage,
		RequiredAttribute: character.AttrBlackFlash,
		Category:          character.CategoryGeneralTechniques,
		RequiresTarget:    true,
		MaxUses:           1,
	},
	{
		Name:              "领域护体",
		Description:       "本轮保护自己免于被淘汰",
		Effect:            EffectProtectSelf,
		RequiredAttribute: character.AttrDomainExtension,
		Category:          character.CategoryGeneralTechniques,
		RequiresTarget:    false,
		MaxUses:           1,
	},
	{
		Name:              "反弹",
		Description:       "将选定玩家的投票反弹到他自己身上",
		Effect:            EffectReflectVote,
		RequiredAttribute: character.AttrDragonBone,
		Category:          character.CategoryCursedTools,
		RequiresTarget:    true,
		MaxUses:           1,
	},
}

// Active 玩家持有的能力实例
type Active struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Effect            EffectKind `json:"effect"`
	RequiredAttribute string     `json:"requiredAttribute"`
	Category          int        `json:"category"`
	UsesRemaining     int        `json:"usesRemaining"`
	MaxUses           int        `json:"maxUses"`
	RequiresTarget    bool       `json:"requiresTarget"`
}

// Detect 根据角色卡特征识别玩家持有的能力
// 每个实例分配独立 ID，同一张卡重复识别会得到不同 ID
func Detect(card *character.Card) []*Active {
	var abilities []*Active
	for _, def := range definitions {
		if !card.HasAttribute(def.Category, def.RequiredAttribute) {
			continue
		}
		abilities = append(abilities, &Active{
			ID:                uuid.NewString(),
			Name:              def.Name,
			Description:       def.Description,
			Effect:            def.Effect,
			RequiredAttribute: def.RequiredAttribute,
			Category:          def.Category,
			UsesRemaining:     def.MaxUses,
			MaxUses:           def.MaxUses,
			RequiresTarget:    def.RequiresTarget,
		})
	}
	return abilities
}
