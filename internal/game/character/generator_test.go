package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_AllTraitsHidden(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithSeed(42)
	card := g.Generate()

	for i := 0; i < CategoryCount; i++ {
		assert.False(t, card.Trait(i).Revealed, "类别 %d 初始应未公开", i)
	}
}

func TestGenerate_TraitCounts(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithSeed(7)
	for range 200 {
		card := g.Generate()

		assert.NotEmpty(t, card.Rank.Value)
		assert.NotEmpty(t, card.CursedTechnique.Value)
		assert.NotEmpty(t, card.CursedEnergyLevel.Value)
		assert.NotEmpty(t, card.CurrentState.Value)

		assert.LessOrEqual(t, len(card.GeneralTechniques.Values), 3)
		assert.GreaterOrEqual(t, len(card.Strengths.Values), 1)
		assert.LessOrEqual(t, len(card.Strengths.Values), 2)
		assert.GreaterOrEqual(t, len(card.Weaknesses.Values), 1)
		assert.LessOrEqual(t, len(card.Weaknesses.Values), 2)
		assert.LessOrEqual(t, len(card.CursedTools.Values), 2)
		assert.LessOrEqual(t, len(card.SpecialTraits.Values), 1)
	}
}

func TestGenerate_NoDuplicatesInList(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithSeed(99)
	for range 200 {
		card := g.Generate()
		for _, values := range [][]string{
			card.GeneralTechniques.Values,
			card.CursedTools.Values,
			card.Strengths.Values,
			card.Weaknesses.Values,
		} {
			seen := make(map[string]bool)
			for _, v := range values {
				assert.False(t, seen[v], "重复取值: %s", v)
				seen[v] = true
			}
		}
	}
}

func TestCard_TraitByIndex(t *testing.T) {
	t.Parallel()

	card := &Card{}
	for i := 0; i < CategoryCount; i++ {
		require.NotNil(t, card.Trait(i))
	}
	assert.Nil(t, card.Trait(-1))
	assert.Nil(t, card.Trait(CategoryCount))
}

func TestCard_HasAttribute(t *testing.T) {
	t.Parallel()

	card := &Card{
		CursedTechnique: Trait{Value: "十种影法术"},
		CursedTools:     Trait{Values: []string{AttrDragonBone, "游云"}},
	}

	assert.True(t, card.HasAttribute(CategoryCursedTechnique, "十种影法术"))
	assert.False(t, card.HasAttribute(CategoryCursedTechnique, "无下限咒术"))
	assert.True(t, card.HasAttribute(CategoryCursedTools, AttrDragonBone))
	assert.False(t, card.HasAttribute(CategoryCursedTools, AttrInvertedSpear))
	assert.False(t, card.HasAttribute(-1, "任意"))
}

func TestCard_RevealAllAndFirstHidden(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithSeed(1)
	card := g.Generate()

	assert.Equal(t, CategoryRank, card.FirstHidden())

	card.Rank.Revealed = true
	assert.Equal(t, CategoryCursedTechnique, card.FirstHidden())

	card.RevealAll()
	assert.Equal(t, -1, card.FirstHidden())
	for i := 0; i < CategoryCount; i++ {
		assert.True(t, card.Trait(i).Revealed)
	}
}

func TestTrait_Format(t *testing.T) {
	t.Parallel()

	scalar := &Trait{Value: "特级"}
	assert.Equal(t, "特级", scalar.Format())
	assert.False(t, scalar.IsList())

	list := &Trait{Values: []string{"游云", "龙骨"}}
	assert.Equal(t, "游云, 龙骨", list.Format())
	assert.True(t, list.IsList())

	empty := &Trait{Values: []string{}}
	assert.Equal(t, "无", empty.Format())
}

func TestCategoryName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "等级", CategoryName(CategoryRank))
	assert.Equal(t, "当前状态", CategoryName(CategoryCurrentState))
	assert.Equal(t, "", CategoryName(-1))
	assert.Equal(t, "", CategoryName(CategoryCount))
}
