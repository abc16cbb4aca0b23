package catalog

import (
	"testing"

	"buddy-backend/internal/progress/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	badges, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, badges)

	byName := make(map[string]domain.Badge)
	for _, b := range badges {
		byName[b.Name] = b
	}
	assert.Equal(t, domain.RequirementCurrentStreak, byName["Week Warrior"].RequirementType)
	assert.Equal(t, 7, byName["Week Warrior"].RequirementValue)
}

func TestParseRejectsBadEntries(t *testing.T) {
	tests := map[string]string{
		"duplicate": `
badges:
  - {name: A, requirement_type: level, requirement_value: 2}
  - {name: A, requirement_type: level, requirement_value: 3}`,
		"unknown type": `
badges:
  - {name: A, requirement_type: quizzes, requirement_value: 2}`,
		"zero value": `
badges:
  - {name: A, requirement_type: level, requirement_value: 0}`,
		"no name": `
badges:
  - {requirement_type: level, requirement_value: 2}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}
