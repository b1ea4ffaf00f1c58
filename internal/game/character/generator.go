package character

import (
	"math/rand"
	"time"
)

// 生成参数
const (
	cursedToolChance   = 0.4  // 持有咒具的概率
	specialTraitChance = 0.15 // 拥有特殊特质的概率
)

// Generator 角色卡生成器
type Generator struct {
	rng *rand.Rand
}

// NewGenerator 创建生成器
func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSeed 创建固定种子的生成器，测试用
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate 生成一张角色卡，所有特征初始均未公开
func (g *Generator) Generate() *Card {
	card := &Card{
		Rank:              Trait{Value: g.pickWeighted(rankPool)},
		CursedTechnique:   Trait{Value: g.pickWeighted(cursedTechniquePool)},
		CursedEnergyLevel: Trait{Value: g.pickWeighted(cursedEnergyLevelPool)},
		GeneralTechniques: Trait{Values: g.pickMultiple(generalTechniquePool, 0, 3)},
		Strengths:         Trait{Values: g.pickMultiple(strengthPool, 1, 2)},
		Weaknesses:        Trait{Values: g.pickMultiple(weaknessPool, 1, 2)},
		CurrentState:      Trait{Value: g.pickWeighted(statePool)},
	}

	// 咒具与特殊特质按概率出现
	if g.rng.Float64() < cursedToolChance {
		card.CursedTools = Trait{Values: g.pickMultiple(cursedToolPool, 1, 2)}
	} else {
		card.CursedTools = Trait{Values: []string{}}
	}
	if g.rng.Float64() < specialTraitChance {
		card.SpecialTraits = Trait{Values: []string{g.pickWeighted(specialTraitPool)}}
	} else {
		card.SpecialTraits = Trait{Values: []string{}}
	}

	return card
}

// pickWeighted 按权重随机选择一个取值
func (g *Generator) pickWeighted(items []WeightedItem) string {
	total := 0
	for _, item := range items {
		total += item.Weight
	}

	n := g.rng.Intn(total)
	for _, item := range items {
		n -= item.Weight
		if n < 0 {
			return item.Name
		}
	}
	return items[len(items)-1].Name
}

// pickMultiple 按权重随机选择 min 到 max 个互不重复的取值
func (g *Generator) pickMultiple(items []WeightedItem, min, max int) []string {
	count := g.rng.Intn(max-min+1) + min
	selected := make([]string, 0, count)
	available := make([]WeightedItem, len(items))
	copy(available, items)

	for i := 0; i < count && len(available) > 0; i++ {
		name := g.pickWeighted(available)
		selected = append(selected, name)
		for j, item := range available {
			if item.Name == name {
				available = append(available[:j], available[j+1:]...)
				break
			}
		}
	}

	return selected
}
