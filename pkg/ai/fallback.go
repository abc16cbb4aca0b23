package ai

import (
	"context"
	"net"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FallbackService asks the primary reviewer first and the secondary one when
// the primary is unreachable or out of quota.
type FallbackService struct {
	primary   Reviewer
	secondary Reviewer
	log       *zap.Logger
}

func NewFallbackService(primary, secondary Reviewer, log *zap.Logger) *FallbackService {
	return &FallbackService{primary: primary, secondary: secondary, log: log.Named("ai")}
}

func (f *FallbackService) ReviewHomework(ctx context.Context, sub Submission) (*Review, error) {
	review, err := f.primary.ReviewHomework(ctx, sub)
	if err == nil {
		return review, nil
	}
	if !isConnectionError(err) && !isQuotaError(err) {
		return nil, err
	}

	f.log.Warn("primary reviewer unavailable, falling back", zap.Error(err))
	review, err = f.secondary.ReviewHomework(ctx, sub)
	if err != nil {
		return nil, errors.Wrap(err, "fallback reviewer")
	}
	return review, nil
}

func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return containsAny(err.Error(), "connection refused", "no such host", "network is unreachable",
		"connection reset", "timeout", "dial tcp", "EOF")
}

func isQuotaError(err error) bool {
	return containsAny(err.Error(), "429", "quota", "rate limit", "too many requests", "resource exhausted")
}

func containsAny(s string, needles ...string) bool {
	s = strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(s, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
