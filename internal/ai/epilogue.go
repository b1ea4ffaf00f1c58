package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/config"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/room"
)

const requestTimeout = 30 * time.Second

const systemPrompt = "你是《咒术回战》世界观的事件记录员。" +
	"根据任务简报与咒术师小队的最终结果，撰写一段 200 到 400 字的中文任务结语。" +
	"语气冷静克制，像官方事件报告结尾的叙事附记，提及幸存者与牺牲者的名字。"

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// EpilogueClient 调用 OpenAI 兼容接口生成任务结语
type EpilogueClient struct {
	cfg    config.AIConfig
	client *http.Client
}

// NewEpilogueClient 创建结语生成客户端
func NewEpilogueClient(cfg config.AIConfig) *EpilogueClient {
	return &EpilogueClient{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Epilogue 生成任务结语
func (c *EpilogueClient) Epilogue(ctx context.Context, req *room.EpilogueRequest) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", errors.New("结语生成服务未配置 API 密钥")
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(req)},
		},
		Temperature: 0.9,
		MaxTokens:   700,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("构造结语请求失败: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("构造结语请求失败: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.APIKey))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("结语服务请求失败: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取结语响应失败: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("结语服务返回异常状态 (%d)", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("解析结语响应失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", fmt.Errorf("结语服务错误: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("结语服务未返回内容")
	}

	epilogue := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if epilogue == "" {
		return "", errors.New("结语服务返回空内容")
	}
	return epilogue, nil
}

// buildUserPrompt 将任务与小队结局组装为用户提示词
func buildUserPrompt(req *room.EpilogueRequest) string {
	var b strings.Builder

	if req.Mission != nil {
		b.WriteString(req.Mission.Briefing())
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "事件历时 %d 轮。\n\n", req.Rounds)

	b.WriteString("【幸存者】\n")
	if len(req.Survivors) == 0 {
		b.WriteString("无\n")
	}
	for _, p := range req.Survivors {
		writePlayerSummary(&b, p)
	}

	b.WriteString("\n【牺牲者】\n")
	if len(req.Eliminated) == 0 {
		b.WriteString("无\n")
	}
	for _, p := range req.Eliminated {
		writePlayerSummary(&b, p)
	}

	return b.String()
}

func writePlayerSummary(b *strings.Builder, p room.PlayerSummary) {
	fmt.Fprintf(b, "- %s", p.Name)
	if p.Card == nil {
		b.WriteString("\n")
		return
	}
	b.WriteString("\n")
	for i := 0; i < character.CategoryCount; i++ {
		fmt.Fprintf(b, "  %s: %s\n", character.CategoryName(i), p.Card.Trait(i).Format())
	}
}
