package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodcents/internal/config"
)

func TestQuizBank(t *testing.T) {
	bank := QuizBank()
	require.Len(t, bank, config.MaxQuizQuestionsPerRound, "rules bound the round size by the bank size")
	for _, q := range bank {
		assert.Len(t, q.Answers, 4, q.Text)
		assert.GreaterOrEqual(t, q.Correct, 0)
		assert.Less(t, q.Correct, len(q.Answers))
	}

	bank[0].Answers[0] = "changed"
	assert.Equal(t, "Savings", QuizBank()[0].Answers[0])
}

func TestDrawQuiz(t *testing.T) {
	bank := QuizBank()
	correctByText := map[string]string{}
	for _, q := range bank {
		correctByText[q.Text] = q.Answers[q.Correct]
	}

	r := NewRand(7)
	for round := 0; round < 20; round++ {
		qs, err := DrawQuiz(r, bank, 3)
		require.NoError(t, err)
		require.Len(t, qs, 3)

		seen := map[string]bool{}
		for _, q := range qs {
			assert.False(t, seen[q.Text], "duplicate question %q", q.Text)
			seen[q.Text] = true
			assert.Equal(t, correctByText[q.Text], q.Answers[q.Correct], "correct answer moved for %q", q.Text)
			assert.ElementsMatch(t, bank[indexOf(bank, q.Text)].Answers, q.Answers)
		}
	}

	_, err := DrawQuiz(r, bank, 0)
	assert.Error(t, err)
	_, err = DrawQuiz(r, bank[:2], 3)
	assert.Error(t, err)
}

func indexOf(bank []QuizQuestion, text string) int {
	for i, q := range bank {
		if q.Text == text {
			return i
		}
	}
	return -1
}

func TestScoreQuiz(t *testing.T) {
	round := []QuizQuestion{{Correct: 1}, {Correct: 0}, {Correct: 3}}
	assert.Equal(t, 3, ScoreQuiz(round, []int{1, 0, 3}))
	assert.Equal(t, 1, ScoreQuiz(round, []int{1, 2, 2}))
	assert.Equal(t, 1, ScoreQuiz(round, []int{1}))
	assert.Equal(t, 0, ScoreQuiz(round, nil))
}
