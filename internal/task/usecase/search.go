package usecase

import (
	"context"
	"sort"
	"strings"

	"buddy-backend/internal/task/domain"
	"buddy-backend/pkg/fuzzy"
)

// searchWindow caps how many tasks are loaded for ranking.
const searchWindow = 500

func (u *taskUsecase) SearchTasks(ctx context.Context, userID, query string, limit int) ([]*domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Task{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	tasks, _, err := u.taskRepo.FindByUserID(ctx, userID, nil, searchWindow, 0)
	if err != nil {
		return nil, err
	}

	type hit struct {
		task  *domain.Task
		score float64
	}
	var hits []hit
	for _, t := range tasks {
		score := fuzzy.Score(query,
			fuzzy.Field{Text: t.Title, Weight: 100},
			fuzzy.Field{Text: t.SubjectName(), Weight: 60},
			fuzzy.Field{Text: t.Description, Weight: 30},
		)
		if score > 0 {
			hits = append(hits, hit{task: t, score: score})
		}
	}

	// Ties keep due-date order from the store.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]*domain.Task, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.task)
	}
	return out, nil
}
