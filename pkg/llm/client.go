// Package llm 提供了调用生成式大模型 API 的客户端。
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"educhat-go/internal/config"
	"educhat-go/pkg/log"
)

// ErrAllModelsFailed 表示候选模型列表全部尝试失败，本轮生成不可用。
var ErrAllModelsFailed = errors.New("all generation models failed")

// Client 定义了生成客户端的接口。
type Client interface {
	// Generate 将 prompt 与检索上下文组装后发送给模型，返回生成的文本。
	// 按配置中的模型顺序依次尝试，第一个成功的模型即为结果。
	Generate(ctx context.Context, prompt, contextText string) (string, error)
	// ListModels 透传上游的模型列表接口。
	ListModels(ctx context.Context) (json.RawMessage, error)
}

type geminiClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewClient 根据配置创建一个新的生成客户端。
// 配置显式传入，不依赖任何包级单例。
func NewClient(cfg config.LLMConfig) Client {
	return &geminiClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate 依次尝试候选模型，成功即短路返回。
// 网络错误、非 200 响应、响应中没有可提取文本，都视为该模型失败并换下一个。
func (c *geminiClient) Generate(ctx context.Context, prompt, contextText string) (string, error) {
	fullPrompt := prompt
	if contextText != "" {
		fullPrompt = fmt.Sprintf("Context: %s\n\nUser Query: %s\n\nProvide an educational, helpful response:", contextText, prompt)
	}

	for _, model := range c.cfg.Models {
		text, err := c.generateWithModel(ctx, model, fullPrompt)
		if err != nil {
			log.Warnf("[LLMClient] 模型 %s 调用失败: %v", model, err)
			continue
		}
		log.Infof("[LLMClient] 模型 %s 调用成功", model)
		return text, nil
	}

	return "", ErrAllModelsFailed
}

// generateWithModel 对单个模型发起一次生成调用。
func (c *geminiClient) generateWithModel(ctx context.Context, model, fullPrompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: fullPrompt}}},
		},
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	// BaseURL 指向 API 版本根（…/v1beta），models 段在这里拼接，
	// 与 ListModels 共用同一个 BaseURL。
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call generate api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generate api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	// 响应里提不出文本不是崩溃，是该模型的一次失败
	if len(genResp.Candidates) == 0 ||
		len(genResp.Candidates[0].Content.Parts) == 0 ||
		genResp.Candidates[0].Content.Parts[0].Text == "" {
		return "", errors.New("response contains no extractable text")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// ListModels 请求上游的模型列表并原样返回响应体。
func (c *geminiClient) ListModels(ctx context.Context) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/models?key=%s", c.cfg.BaseURL, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list models request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call list models api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read list models response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list models api returned non-200 status: %s, body: %s", resp.Status, string(body))
	}

	return json.RawMessage(body), nil
}
