package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/mission"
)

// registerMissionRoutes 注册任务查询与管理接口
func (s *Server) registerMissionRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/missions", s.handleListMissions)
	mux.HandleFunc("/api/missions/", s.handleMissionByID)
	mux.HandleFunc("/api/admin/missions", s.requireAdmin(s.handleAdminMissions))
	mux.HandleFunc("/api/admin/missions/", s.requireAdmin(s.handleAdminMissionByID))
}

// requireAdmin 管理接口鉴权中间件
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := s.config.Admin.Password
		if password == "" || r.Header.Get("X-Admin-Password") != password {
			writeJSONError(w, http.StatusUnauthorized, "管理密码错误")
			return
		}
		next(w, r)
	}
}

// handleListMissions 公开的任务列表接口，支持 difficulty 多值过滤
func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "仅支持 GET")
		return
	}

	var filter *mission.Filter
	if difficulties := r.URL.Query()["difficulty"]; len(difficulties) > 0 {
		filter = &mission.Filter{Difficulty: difficulties}
	}

	missions, err := s.missions.ListMissions(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] 查询任务列表失败: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "查询任务失败")
		return
	}

	writeJSON(w, http.StatusOK, missions)
}

// handleMissionByID 公开的单任务查询，/api/missions/{id} 返回任务详情，
// /api/missions/{id}/briefing 返回简报文本
func (s *Server) handleMissionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "仅支持 GET")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/missions/")
	id, wantBriefing := strings.CutSuffix(path, "/briefing")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "缺少任务 ID")
		return
	}

	m, err := s.missions.GetMission(r.Context(), id)
	if err != nil {
		log.Printf("[ERROR] 查询任务 %s 失败: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "查询任务失败")
		return
	}
	if m == nil {
		writeJSONError(w, http.StatusNotFound, "任务不存在")
		return
	}

	if wantBriefing {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(m.Briefing()))
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// handleAdminMissions 创建自定义任务
func (s *Server) handleAdminMissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "仅支持 POST")
		return
	}

	var m mission.Mission
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSONError(w, http.StatusBadRequest, "请求体解析失败")
		return
	}

	created, err := s.missions.CreateMission(r.Context(), &m)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleAdminMissionByID 更新或删除指定任务
func (s *Server) handleAdminMissionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/missions/")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "缺少任务 ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var m mission.Mission
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeJSONError(w, http.StatusBadRequest, "请求体解析失败")
			return
		}
		m.ID = id
		if err := s.missions.UpdateMission(r.Context(), &m); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, &m)

	case http.MethodDelete:
		if err := s.missions.DeleteMission(r.Context(), id); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeJSONError(w, http.StatusMethodNotAllowed, "仅支持 PUT / DELETE")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] 响应编码失败: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
