package config

import (
	"errors"

	"github.com/rs/zerolog"

	"tiktok-ads-agent/internal/domain/port"
	"tiktok-ads-agent/internal/domain/service"
	"tiktok-ads-agent/internal/infrastructure/adapter/ai"
	"tiktok-ads-agent/internal/infrastructure/adapter/tiktok"
	"tiktok-ads-agent/internal/infrastructure/adapter/ui"
	"tiktok-ads-agent/internal/infrastructure/logging"
)

// Container holds all application dependencies wired together. It creates
// the infrastructure adapters first, then the domain services over them,
// and provides accessors for the session shell.
type Container struct {
	config        *Config
	logger        zerolog.Logger
	adsAPI        port.AdsAPI
	modelProvider port.ModelProvider
	uiAdapter     *ui.CLIAdapter
	registry      *service.ToolRegistry
	engine        *service.ConversationEngine
}

// NewContainer creates a new DI container and wires all dependencies.
func NewContainer(cfg *Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	logger := logging.New(cfg.LogLevel)

	backendCfg := tiktok.DefaultConfig()
	backendCfg.UploadSuccessRate = cfg.UploadSuccessRate
	backendCfg.SubmitSuccessRate = cfg.SubmitSuccessRate
	adsAPI := tiktok.NewMockAdsAPI(backendCfg, nil, logger)

	modelProvider := ai.NewAnthropicAdapter(cfg.AIModel, cfg.MaxTokens, ai.CampaignSystemPrompt, cfg.ModelTimeout)
	uiAdapter := ui.NewCLIAdapter()

	registry, err := service.NewToolRegistry(adsAPI, cfg.AccessToken, logger)
	if err != nil {
		return nil, err
	}

	engine, err := service.NewConversationEngine(modelProvider, registry, logger)
	if err != nil {
		return nil, err
	}

	// Tool call traces render through the shell as they happen.
	engine.SetToolTrace(func(toolName, inputJSON, result string, _ bool) {
		_ = uiAdapter.DisplayToolResult(toolName, inputJSON, result)
	})

	return &Container{
		config:        cfg,
		logger:        logger,
		adsAPI:        adsAPI,
		modelProvider: modelProvider,
		uiAdapter:     uiAdapter,
		registry:      registry,
		engine:        engine,
	}, nil
}

// Engine returns the conversation engine.
func (c *Container) Engine() *service.ConversationEngine {
	return c.engine
}

// AdsAPI returns the ads backend.
func (c *Container) AdsAPI() port.AdsAPI {
	return c.adsAPI
}

// ModelProvider returns the model backend.
func (c *Container) ModelProvider() port.ModelProvider {
	return c.modelProvider
}

// UIAdapter returns the CLI user interface adapter.
func (c *Container) UIAdapter() *ui.CLIAdapter {
	return c.uiAdapter
}

// Registry returns the tool registry.
func (c *Container) Registry() *service.ToolRegistry {
	return c.registry
}

// Config returns the loaded configuration.
func (c *Container) Config() *Config {
	return c.config
}

// Logger returns the configured logger.
func (c *Container) Logger() zerolog.Logger {
	return c.logger
}
