package mission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissionValidate(t *testing.T) {
	t.Parallel()

	valid := Mission{
		Name:        "涩谷站封锁",
		Description: "涩谷站内出现特级咒灵，疏散平民并压制目标。",
		Difficulty:  DifficultyHard,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Mission)
	}{
		{"空名称", func(m *Mission) { m.Name = "  " }},
		{"空描述", func(m *Mission) { m.Description = "" }},
		{"无效难度", func(m *Mission) { m.Difficulty = "地狱" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := valid
			tt.mutate(&m)
			assert.Error(t, m.Validate())
		})
	}
}

func TestMissionBriefing(t *testing.T) {
	t.Parallel()

	m := Mission{
		Name:          "咒胎戴天",
		Description:   "少年院内确认到特级咒灵反应。",
		Threat:        "特级",
		Objectives:    []string{"确认幸存者", "回收宿傩之指"},
		DangerFactors: []string{"领域展开", "胎藏咒灵"},
		Difficulty:    DifficultyExtreme,
	}

	text := m.Briefing()
	assert.Contains(t, text, "【任务简报】咒胎戴天")
	assert.Contains(t, text, "难度：极难")
	assert.Contains(t, text, "威胁评估：特级")
	assert.Contains(t, text, "1. 确认幸存者")
	assert.Contains(t, text, "2. 回收宿傩之指")
	assert.Contains(t, text, "- 领域展开")
}

func TestMissionBriefing_OmitsEmptySections(t *testing.T) {
	t.Parallel()

	m := Mission{
		Name:        "夜间巡查",
		Description: "例行巡查。",
		Threat:      "二级",
		Difficulty:  DifficultyEasy,
	}

	text := m.Briefing()
	assert.NotContains(t, text, "任务目标")
	assert.NotContains(t, text, "危险因素")
}

func TestFilterMatches(t *testing.T) {
	t.Parallel()

	custom := true
	easy := Mission{Difficulty: DifficultyEasy}
	hardCustom := Mission{Difficulty: DifficultyHard, IsCustom: true}

	tests := []struct {
		name    string
		filter  *Filter
		mission *Mission
		want    bool
	}{
		{"nil 过滤器放行一切", nil, &easy, true},
		{"空过滤器放行一切", &Filter{}, &hardCustom, true},
		{"难度命中", &Filter{Difficulty: []string{DifficultyEasy, DifficultyMedium}}, &easy, true},
		{"难度未命中", &Filter{Difficulty: []string{DifficultyExtreme}}, &easy, false},
		{"自定义过滤命中", &Filter{IsCustom: &custom}, &hardCustom, true},
		{"自定义过滤未命中", &Filter{IsCustom: &custom}, &easy, false},
		{"组合条件", &Filter{Difficulty: []string{DifficultyHard}, IsCustom: &custom}, &hardCustom, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.matches(tt.mission))
		})
	}
}
