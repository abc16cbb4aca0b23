package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const reviewSystemPrompt = "You are a homework verification assistant. Analyze submissions and determine if they appear complete and worthy of XP rewards. Return only a JSON object with: { \"completed\": boolean, \"xp\": number (10-50 based on quality), \"feedback\": string }"

func reviewUserPrompt(sub Submission) string {
	description := sub.Description
	if description == "" {
		description = "No description provided"
	}
	fileType := sub.FileType
	if fileType == "" {
		fileType = "No file"
	}
	return fmt.Sprintf(`Analyze this homework submission:
Title: %s
Description: %s
File Type: %s

Determine if this looks like a completed homework submission and assign appropriate XP (10-50).`,
		sub.Title, description, fileType)
}

// parseReview pulls the first JSON object out of model output, which may be
// wrapped in prose or a markdown fence.
func parseReview(text string) (*Review, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, errors.Errorf("no JSON object in model output: %q", truncate(text, 200))
	}

	var review Review
	if err := json.Unmarshal([]byte(text[start:end+1]), &review); err != nil {
		return nil, errors.Wrap(err, "decoding review")
	}
	return &review, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
