package ai

import "context"

// StubClient заглушка, которая не делает реальных запросов. Нужна для разработки UI без ключа.
type StubClient struct{}

func NewStubClient() *StubClient { return &StubClient{} }

func (c *StubClient) Complete(_ context.Context, _, text string) (string, error) {
	return "Explanation for: " + text, nil
}

func (c *StubClient) ReadImage(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	return "Photosynthesis", nil
}
