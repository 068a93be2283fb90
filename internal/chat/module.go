// Package chat provides the conversational lead-qualification bounded
// context module. One POST endpoint serves a full dialogue turn.
package chat

import (
	"context"
	"fmt"

	"leadchat_backend/internal/chat/agent"
	"leadchat_backend/internal/chat/handler"
	"leadchat_backend/internal/chat/service"
	"leadchat_backend/internal/email"
	"leadchat_backend/internal/events"
	apphttp "leadchat_backend/internal/http"
	"leadchat_backend/platform/config"
	"leadchat_backend/platform/logger"
	"leadchat_backend/platform/validator"
)

// ModuleConfig combines the config interfaces the chat module needs.
type ModuleConfig interface {
	config.GatewayConfig
	config.NotifyConfig
}

// Module is the chat bounded context module implementing http.Module.
type Module struct {
	handler      *handler.Handler
	orchestrator *service.Orchestrator
}

// NewModule creates and initializes the chat module with all its dependencies.
func NewModule(ctx context.Context, cfg ModuleConfig, sender email.Sender, bus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	gateway, err := newGateway(ctx, cfg)
	if err != nil {
		return nil, err
	}

	orc := service.NewOrchestrator(gateway, log)
	dsp := service.NewDispatcher(sender, cfg.GetNotifyToAddress(), log)
	h := handler.New(orc, dsp, bus, val, log)

	return &Module{handler: h, orchestrator: orc}, nil
}

// newGateway builds the configured language-model gateway implementation.
func newGateway(ctx context.Context, cfg config.GatewayConfig) (agent.Gateway, error) {
	switch cfg.GetLLMProvider() {
	case "openai":
		return agent.NewOpenAIGateway(cfg.GetLLMAPIKey(), cfg.GetLLMBaseURL(), cfg.GetLLMModel()), nil
	case "gemini":
		return agent.NewGeminiGateway(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel())
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.GetLLMProvider())
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "chat"
}

// RegisterRoutes mounts chat routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/chat", m.handler.Turn)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
