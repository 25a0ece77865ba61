package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error
	LastReq  Request
	Calls    int
}

func (m *MockClient) Generate(ctx context.Context, req Request) (string, error) {
	m.LastReq = req
	m.Calls++
	return m.Response, m.Err
}
