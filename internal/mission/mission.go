package mission

import (
	"fmt"
	"strings"
	"time"
)

// 任务难度
const (
	DifficultyEasy    = "简单"
	DifficultyMedium  = "中等"
	DifficultyHard    = "困难"
	DifficultyExtreme = "极难"
)

// difficultyOrder 难度排序权重
var difficultyOrder = map[string]int{
	DifficultyEasy:    0,
	DifficultyMedium:  1,
	DifficultyHard:    2,
	DifficultyExtreme: 3,
}

// Mission 任务
type Mission struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Threat        string    `json:"threat"`
	Objectives    []string  `json:"objectives"`
	DangerFactors []string  `json:"dangerFactors"`
	Difficulty    string    `json:"difficulty"`
	IsCustom      bool      `json:"isCustom"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	CreatedBy     string    `json:"createdBy,omitempty"`
}

// Validate 校验任务字段
func (m *Mission) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("任务名称不能为空")
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("任务描述不能为空")
	}
	if _, ok := difficultyOrder[m.Difficulty]; !ok {
		return fmt.Errorf("无效的任务难度: %s", m.Difficulty)
	}
	return nil
}

// Briefing 渲染任务简报文本
func (m *Mission) Briefing() string {
	var b strings.Builder
	fmt.Fprintf(&b, "【任务简报】%s（难度：%s）\n\n", m.Name, m.Difficulty)
	fmt.Fprintf(&b, "%s\n\n", m.Description)
	fmt.Fprintf(&b, "威胁评估：%s\n", m.Threat)
	if len(m.Objectives) > 0 {
		b.WriteString("\n任务目标：\n")
		for i, o := range m.Objectives {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, o)
		}
	}
	if len(m.DangerFactors) > 0 {
		b.WriteString("\n危险因素：\n")
		for _, d := range m.DangerFactors {
			fmt.Fprintf(&b, "  - %s\n", d)
		}
	}
	return b.String()
}

// Filter 任务列表过滤条件
type Filter struct {
	Difficulty []string
	IsCustom   *bool
}

// matches 判断任务是否满足过滤条件
func (f *Filter) matches(m *Mission) bool {
	if f == nil {
		return true
	}
	if len(f.Difficulty) > 0 {
		found := false
		for _, d := range f.Difficulty {
			if m.Difficulty == d {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.IsCustom != nil && m.IsCustom != *f.IsCustom {
		return false
	}
	return true
}
