package character

import "strings"

// 特征类别序号，顺序固定，协议中按序号引用
const (
	CategoryRank = iota
	CategoryCursedTechnique
	CategoryCursedEnergyLevel
	CategoryGeneralTechniques
	CategoryCursedTools
	CategoryStrengths
	CategoryWeaknesses
	CategorySpecialTraits
	CategoryCurrentState

	CategoryCount = 9
)

var categoryNames = [CategoryCount]string{
	"等级",
	"术式",
	"咒力水平",
	"通用技能",
	"咒具",
	"优势",
	"弱点",
	"特殊特质",
	"当前状态",
}

// CategoryName 返回类别名称，序号越界返回空串
func CategoryName(index int) string {
	if index < 0 || index >= CategoryCount {
		return ""
	}
	return categoryNames[index]
}

// 特殊取值
const (
	StateHealthy        = "健康"       // 治疗类能力恢复到的状态
	TechniqueSuppressed = "无（已被封印）" // 术式被压制后的取值
)

// Trait 单个特征：是否已公开 + 取值
// 标量类别使用 Value，列表类别使用 Values
type Trait struct {
	Revealed bool     `json:"revealed"`
	Value    string   `json:"value,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// IsList 判断该特征是否为列表取值
func (t *Trait) IsList() bool {
	return t.Values != nil
}

// Format 返回用于展示的取值文本，列表用顿号连接，空列表显示"无"
func (t *Trait) Format() string {
	if t.Values != nil {
		if len(t.Values) == 0 {
			return "无"
		}
		return strings.Join(t.Values, ", ")
	}
	return t.Value
}

// Card 角色卡，九个特征类别
type Card struct {
	Rank              Trait `json:"rank"`
	CursedTechnique   Trait `json:"cursedTechnique"`
	CursedEnergyLevel Trait `json:"cursedEnergyLevel"`
	GeneralTechniques Trait `json:"generalTechniques"`
	CursedTools       Trait `json:"cursedTools"`
	Strengths         Trait `json:"strengths"`
	Weaknesses        Trait `json:"weaknesses"`
	SpecialTraits     Trait `json:"specialTraits"`
	CurrentState      Trait `json:"currentState"`
}

// Trait 按类别序号取特征，序号越界返回 nil
func (c *Card) Trait(index int) *Trait {
	switch index {
	case CategoryRank:
		return &c.Rank
	case CategoryCursedTechnique:
		return &c.CursedTechnique
	case CategoryCursedEnergyLevel:
		return &c.CursedEnergyLevel
	case CategoryGeneralTechniques:
		return &c.GeneralTechniques
	case CategoryCursedTools:
		return &c.CursedTools
	case CategoryStrengths:
		return &c.Strengths
	case CategoryWeaknesses:
		return &c.Weaknesses
	case CategorySpecialTraits:
		return &c.SpecialTraits
	case CategoryCurrentState:
		return &c.CurrentState
	}
	return nil
}

// HasAttribute 判断指定类别中是否含有某个取值
func (c *Card) HasAttribute(index int, attr string) bool {
	t := c.Trait(index)
	if t == nil {
		return false
	}
	if t.Values != nil {
		for _, v := range t.Values {
			if v == attr {
				return true
			}
		}
		return false
	}
	return t.Value == attr
}

// RevealAll 公开全部特征，游戏结束时调用
func (c *Card) RevealAll() {
	for i := 0; i < CategoryCount; i++ {
		c.Trait(i).Revealed = true
	}
}

// FirstHidden 返回第一个未公开的类别序号，全部已公开时返回 -1
func (c *Card) FirstHidden() int {
	for i := 0; i < CategoryCount; i++ {
		if !c.Trait(i).Revealed {
			return i
		}
	}
	return -1
}
