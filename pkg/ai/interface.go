package ai

import "context"

// Submission is the part of a homework submission shown to the reviewer.
type Submission struct {
	Title       string
	Description string
	FileType    string
}

// Review is the verdict returned by a reviewer. XP is the raw suggestion and
// callers clamp it.
type Review struct {
	Completed bool   `json:"completed"`
	XP        int    `json:"xp"`
	Feedback  string `json:"feedback"`
}

// Reviewer grades homework submissions. Implement it to add a new provider.
type Reviewer interface {
	ReviewHomework(ctx context.Context, sub Submission) (*Review, error)
}

// ProviderType selects the reviewer implementation.
type ProviderType string

const (
	ProviderGateway ProviderType = "gateway"
	ProviderOllama  ProviderType = "ollama"
	ProviderAuto    ProviderType = "auto"
)
