package llm

import "context"

// Gateway is the remote model endpoint used by the chat flow.
type Gateway interface {
	Query(ctx context.Context, contextText string, question string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
	Synthesize(ctx context.Context, notes []string) (string, error)
}

// EndpointConfig is resolved on every call so preference changes apply to the next request.
type EndpointConfig struct {
	APIKey            string
	Model             string
	SystemInstruction string
	BaseURL           string
}

type ConfigProvider interface {
	EndpointConfig(ctx context.Context) EndpointConfig
}

// ConfigProviderFunc adapts a plain function, mostly for tests.
type ConfigProviderFunc func(ctx context.Context) EndpointConfig

func (f ConfigProviderFunc) EndpointConfig(ctx context.Context) EndpointConfig {
	return f(ctx)
}
