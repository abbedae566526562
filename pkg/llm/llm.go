// Package llm 封装模型调用层：eino 的 openai ChatModel、限流与 429 重试。
// 对外只暴露统一的 ModelReply 信封，调用失败不会向上抛错。
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/search_radar/pkg/config"
	"github.com/iWorld-y/search_radar/pkg/logger"
	dm "github.com/iWorld-y/search_radar/pkg/model"
)

const (
	maxRetries = 3
	baseDelay  = 2 * time.Second
)

const systemPrompt = "你是一个 JSON 生成器。请只输出 JSON 字符串。"

// Client 模型调用客户端
type Client struct {
	chatModel model.ChatModel
	limiter   *rate.Limiter
}

// New 创建模型调用客户端
func New(ctx context.Context, cfg config.LLMConfig, limiter *rate.Limiter) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, err
	}
	return &Client{chatModel: chatModel, limiter: limiter}, nil
}

// NewWithModel 注入现成的 ChatModel，测试用
func NewWithModel(cm model.ChatModel, limiter *rate.Limiter) *Client {
	return &Client{chatModel: cm, limiter: limiter}
}

// Generate 发送 Prompt 并返回统一信封。429 按指数退避重试，
// 重试耗尽或其他错误都折叠为 Succeeded=false 的回复。
func (c *Client) Generate(ctx context.Context, prompt string) dm.ModelReply {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return dm.ModelReply{ErrorMessage: err.Error()}
		}

		resp, err := c.chatModel.Generate(ctx, messages)
		if err != nil {
			lastErr = err
			if isRateLimited(err) && i < maxRetries {
				delay := baseDelay * time.Duration(1<<i)
				logger.Log.Warnf("模型限流，%v 后重试 (%d/%d): %v", delay, i+1, maxRetries, err)
				time.Sleep(delay)
				continue
			}
			break
		}

		return dm.ModelReply{Succeeded: true, MessageText: resp.Content}
	}

	return dm.ModelReply{ErrorMessage: lastErr.Error()}
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
