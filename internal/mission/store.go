package mission

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	_ "embed"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed missions.json
var defaultMissionsJSON []byte

const schema = `
CREATE TABLE IF NOT EXISTS missions (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL,
	threat         TEXT NOT NULL,
	objectives     TEXT NOT NULL,
	danger_factors TEXT NOT NULL,
	difficulty     TEXT NOT NULL,
	is_custom      INTEGER NOT NULL DEFAULT 1,
	created_at     INTEGER NOT NULL,
	created_by     TEXT
);
`

// Store 任务存储：内置任务来自嵌入的 JSON，自定义任务存于 SQLite
type Store struct {
	db       *sql.DB
	builtins []*Mission
}

// NewStore 打开数据库并加载内置任务
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开任务数据库失败: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("初始化任务表失败: %w", err)
	}

	var builtins []*Mission
	if err := json.Unmarshal(defaultMissionsJSON, &builtins); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("解析内置任务失败: %w", err)
	}

	log.Printf("📜 已加载 %d 个内置任务", len(builtins))

	return &Store{db: db, builtins: builtins}, nil
}

// Close 关闭数据库
func (s *Store) Close() error {
	return s.db.Close()
}

// GetMission 按 ID 查询任务，内置任务优先
func (s *Store) GetMission(ctx context.Context, id string) (*Mission, error) {
	for _, m := range s.builtins {
		if m.ID == id {
			return m, nil
		}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, threat, objectives, danger_factors,
		       difficulty, is_custom, created_at, created_by
		FROM missions WHERE id = ?`, id)

	m, err := scanMission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMissions 返回满足过滤条件的全部任务
// 内置任务在前，其后按难度与名称排序
func (s *Store) ListMissions(ctx context.Context, filter *Filter) ([]*Mission, error) {
	query := `
		SELECT id, name, description, threat, objectives, danger_factors,
		       difficulty, is_custom, created_at, created_by
		FROM missions WHERE is_custom = 1`
	var args []any
	if filter != nil && len(filter.Difficulty) > 0 {
		placeholders := strings.Repeat("?,", len(filter.Difficulty))
		query += fmt.Sprintf(" AND difficulty IN (%s)", placeholders[:len(placeholders)-1])
		for _, d := range filter.Difficulty {
			args = append(args, d)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []*Mission
	for _, m := range s.builtins {
		if filter.matches(m) {
			missions = append(missions, m)
		}
	}
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		if filter.matches(m) {
			missions = append(missions, m)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(missions, func(i, j int) bool {
		a, b := missions[i], missions[j]
		if a.IsCustom != b.IsCustom {
			return !a.IsCustom
		}
		if difficultyOrder[a.Difficulty] != difficultyOrder[b.Difficulty] {
			return difficultyOrder[a.Difficulty] < difficultyOrder[b.Difficulty]
		}
		return a.Name < b.Name
	})

	return missions, nil
}

// CreateMission 创建自定义任务
func (s *Store) CreateMission(ctx context.Context, m *Mission) (*Mission, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	m.ID = "mission_custom_" + uuid.NewString()
	m.IsCustom = true
	m.CreatedAt = time.Now()

	objectives, _ := json.Marshal(m.Objectives)
	dangerFactors, _ := json.Marshal(m.DangerFactors)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO missions (id, name, description, threat, objectives, danger_factors,
		                      difficulty, is_custom, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		m.ID, m.Name, m.Description, m.Threat, string(objectives), string(dangerFactors),
		m.Difficulty, m.CreatedAt.Unix(), m.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("保存任务失败: %w", err)
	}

	log.Printf("📜 已创建自定义任务: %s (%s)", m.Name, m.ID)

	return m, nil
}

// UpdateMission 更新自定义任务，内置任务不可修改
func (s *Store) UpdateMission(ctx context.Context, m *Mission) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, b := range s.builtins {
		if b.ID == m.ID {
			return fmt.Errorf("内置任务不可修改")
		}
	}

	objectives, _ := json.Marshal(m.Objectives)
	dangerFactors, _ := json.Marshal(m.DangerFactors)

	res, err := s.db.ExecContext(ctx, `
		UPDATE missions SET name = ?, description = ?, threat = ?, objectives = ?,
		                    danger_factors = ?, difficulty = ?
		WHERE id = ? AND is_custom = 1`,
		m.Name, m.Description, m.Threat, string(objectives), string(dangerFactors),
		m.Difficulty, m.ID)
	if err != nil {
		return fmt.Errorf("更新任务失败: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("任务不存在: %s", m.ID)
	}
	return nil
}

// DeleteMission 删除自定义任务，内置任务不可删除
func (s *Store) DeleteMission(ctx context.Context, id string) error {
	for _, b := range s.builtins {
		if b.ID == id {
			return fmt.Errorf("内置任务不可删除")
		}
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM missions WHERE id = ? AND is_custom = 1`, id)
	if err != nil {
		return fmt.Errorf("删除任务失败: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("任务不存在: %s", id)
	}
	return nil
}

// scanner 兼容 *sql.Row 与 *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanMission(row scanner) (*Mission, error) {
	var m Mission
	var objectives, dangerFactors string
	var isCustom int
	var createdAt int64
	var createdBy sql.NullString

	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Threat, &objectives, &dangerFactors,
		&m.Difficulty, &isCustom, &createdAt, &createdBy)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(objectives), &m.Objectives); err != nil {
		return nil, fmt.Errorf("解析任务目标失败: %w", err)
	}
	if err := json.Unmarshal([]byte(dangerFactors), &m.DangerFactors); err != nil {
		return nil, fmt.Errorf("解析危险因素失败: %w", err)
	}
	m.IsCustom = isCustom == 1
	m.CreatedAt = time.Unix(createdAt, 0)
	m.CreatedBy = createdBy.String

	return &m, nil
}
