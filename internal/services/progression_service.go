package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"goodcents/internal/config"
	"goodcents/internal/content"
	"goodcents/internal/core"
	"goodcents/internal/log"
	"goodcents/internal/metrics"
	"goodcents/internal/store"
)

const (
	goalMaxLevel   = 5
	goalRetirement = 10000
)

// ProgressionService handles the job quiz, lessons and long-term goals.
type ProgressionService struct {
	store   store.Store
	content content.Provider
	rules   config.Rules
	rand    Rand
	metrics *metrics.Recorder
}

func NewProgressionService(st store.Store, p content.Provider, rules config.Rules, r Rand, m *metrics.Recorder) *ProgressionService {
	return &ProgressionService{
		store:   st,
		content: p,
		rules:   rules,
		rand:    r,
		metrics: m,
	}
}

// QuizResult is a committed quiz submission.
type QuizResult struct {
	Correct  int
	Gained   int
	Before   core.Job
	After    core.Job
	Promoted bool
}

// LessonResult is a committed lesson completion.
type LessonResult struct {
	Record    core.CompletedLesson
	Correct   int
	Questions int
	Upgraded  bool
}

func (s *ProgressionService) Job(ctx context.Context) (core.Job, error) {
	return loadJob(ctx, s.store)
}

// NewQuiz draws this week's job quiz.
func (s *ProgressionService) NewQuiz() ([]QuizQuestion, error) {
	return DrawQuiz(s.rand, QuizBank(), s.rules.QuizQuestionsPerRound)
}

// SubmitQuiz awards promotion points for correct answers and marks the
// weekly quiz done. A second submission in the same week fails with
// core.ErrAlreadyDone.
func (s *ProgressionService) SubmitQuiz(ctx context.Context, correct int) (QuizResult, error) {
	if correct < 0 || correct > s.rules.QuizQuestionsPerRound {
		return QuizResult{}, fmt.Errorf("%w: %d correct answers out of %d", core.ErrInvalidAmount, correct, s.rules.QuizQuestionsPerRound)
	}

	var res QuizResult
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		flags, err := loadFlags(ctx, tx)
		if err != nil {
			return err
		}
		if flags.DoneThisWeeksQuiz {
			return fmt.Errorf("quiz: %w", core.ErrAlreadyDone)
		}
		job, err := loadJob(ctx, tx)
		if err != nil {
			return err
		}
		after, gained := job.Award(correct)
		if err := tx.SaveJob(ctx, after); err != nil {
			return fmt.Errorf("save job: %w", err)
		}
		flags.DoneThisWeeksQuiz = true
		if err := tx.SaveFlags(ctx, flags); err != nil {
			return fmt.Errorf("save flags: %w", err)
		}
		res = QuizResult{
			Correct:  correct,
			Gained:   gained,
			Before:   job,
			After:    after,
			Promoted: after.Level() > job.Level(),
		}
		return nil
	})
	if err != nil {
		s.metrics.OperationFailed(log.OpQuiz)
		return QuizResult{}, err
	}

	s.metrics.QuizAwarded(res.Gained)
	s.metrics.SetPromotionLevel(res.After.Level())
	slog.InfoContext(ctx, "Quiz submitted",
		"correct", res.Correct,
		"gained", res.Gained,
		"progress", res.After.PromotionProgress,
		log.FieldLevel, res.After.Level(),
		"promoted", res.Promoted)
	return res, nil
}

// Lessons returns every lesson in display order with its enabled state.
func (s *ProgressionService) Lessons(ctx context.Context) ([]core.Lesson, map[int]bool, error) {
	completed, err := s.store.ListCompletedLessons(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list completed lessons: %w", err)
	}
	ordered := content.Lessons(s.content)
	enabled := make(map[int]bool, len(ordered))
	for _, l := range ordered {
		enabled[l.ID] = LessonEnabled(l, completed, ordered)
	}
	return ordered, enabled, nil
}

// LessonEnabled reports whether a lesson can be opened. A lesson completed
// with every answer right is closed; a lesson completed otherwise stays open
// for a retry. The first lesson is always open; any other one needs every
// earlier lesson to have a completion record.
func LessonEnabled(lesson core.Lesson, completed []core.CompletedLesson, ordered []core.Lesson) bool {
	done := make(map[int]core.CompletedLesson, len(completed))
	for _, c := range completed {
		done[c.LessonID] = c
	}
	if c, ok := done[lesson.ID]; ok {
		return !c.AllCorrect
	}
	for i, l := range ordered {
		if l.ID == lesson.ID {
			return i == 0 || allRecorded(ordered[:i], done)
		}
	}
	return false
}

func allRecorded(lessons []core.Lesson, done map[int]core.CompletedLesson) bool {
	for _, l := range lessons {
		if _, ok := done[l.ID]; !ok {
			return false
		}
	}
	return true
}

// CompleteLesson records an attempt at a lesson. The record is only ever
// upgraded to all-correct.
func (s *ProgressionService) CompleteLesson(ctx context.Context, lessonID, correct int) (LessonResult, error) {
	lesson, ok := content.FindLesson(s.content, lessonID)
	if !ok {
		return LessonResult{}, fmt.Errorf("lesson %d: %w", lessonID, store.ErrNotFound)
	}
	if correct < 0 || correct > len(lesson.Questions) {
		return LessonResult{}, fmt.Errorf("%w: %d correct answers out of %d", core.ErrInvalidAmount, correct, len(lesson.Questions))
	}
	allCorrect := correct == len(lesson.Questions)

	var res LessonResult
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		record, err := tx.GetCompletedLesson(ctx, lessonID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			record = core.CompletedLesson{LessonID: lesson.ID, Title: lesson.Title}
		case err != nil:
			return fmt.Errorf("load completed lesson: %w", err)
		}
		upgraded := record.Upgrade(allCorrect)
		if err := tx.SaveCompletedLesson(ctx, upgraded); err != nil {
			return fmt.Errorf("save completed lesson: %w", err)
		}

		flags, err := loadFlags(ctx, tx)
		if err != nil {
			return err
		}
		flags.CompletedLessonThisWeek = true
		if err := tx.SaveFlags(ctx, flags); err != nil {
			return fmt.Errorf("save flags: %w", err)
		}
		res = LessonResult{
			Record:    upgraded,
			Correct:   correct,
			Questions: len(lesson.Questions),
			Upgraded:  upgraded.AllCorrect && !record.AllCorrect,
		}
		return nil
	})
	if err != nil {
		s.metrics.OperationFailed(log.OpLesson)
		return LessonResult{}, err
	}

	s.metrics.LessonCompleted()
	slog.InfoContext(ctx, "Lesson completed",
		log.FieldLessonID, lessonID,
		"correct", correct,
		"questions", len(lesson.Questions),
		"all_correct", res.Record.AllCorrect)
	return res, nil
}

// Goals reports progress on the three long-term goals, each capped at 1.
func (s *ProgressionService) Goals(ctx context.Context) ([]core.Goal, error) {
	p, err := loadPlayer(ctx, s.store)
	if err != nil {
		return nil, err
	}
	job, err := loadJob(ctx, s.store)
	if err != nil {
		return nil, err
	}
	completed, err := s.store.ListCompletedLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list completed lessons: %w", err)
	}
	return GoalProgress(p, job, len(completed), len(content.Lessons(s.content))), nil
}

// GoalProgress computes the three goals from plain state.
func GoalProgress(p core.Player, job core.Job, completedLessons, totalLessons int) []core.Goal {
	lessons := 0.0
	if totalLessons > 0 {
		lessons = float64(completedLessons) / float64(totalLessons)
	}
	return []core.Goal{
		{
			Title:       "Ascend the Ranks!",
			Description: "Reach Legend promotion at your job.",
			Progress:    capProgress(float64(job.Level()) / goalMaxLevel),
		},
		{
			Title:       "Save for the Future!",
			Description: "Save $10,000 in your Retirement Savings account.",
			Progress:    capProgress(p.Retirement / goalRetirement),
		},
		{
			Title:       "Become a Money Genius!",
			Description: "Complete all lessons.",
			Progress:    capProgress(lessons),
		},
	}
}

func capProgress(v float64) float64 {
	return min(max(v, 0), 1)
}

// GameWon reports whether every goal is complete.
func GameWon(goals []core.Goal) bool {
	for _, g := range goals {
		if !g.Complete() {
			return false
		}
	}
	return len(goals) > 0
}

// CanAdvanceWeek reports whether this week's tasks are done. The lesson is
// not required once every lesson has a completion record.
func CanAdvanceWeek(flags core.GameSessionFlags, completedLessons, totalLessons int) bool {
	if !flags.DoneThisWeeksQuiz || !flags.DoneThisWeeksInteractiveEvent {
		return false
	}
	return flags.CompletedLessonThisWeek || completedLessons >= totalLessons
}

// WeekStatus loads what CanAdvanceWeek needs and evaluates it.
func (s *ProgressionService) WeekStatus(ctx context.Context) (core.GameSessionFlags, bool, error) {
	flags, err := loadFlags(ctx, s.store)
	if err != nil {
		return core.GameSessionFlags{}, false, err
	}
	completed, err := s.store.ListCompletedLessons(ctx)
	if err != nil {
		return core.GameSessionFlags{}, false, fmt.Errorf("list completed lessons: %w", err)
	}
	return flags, CanAdvanceWeek(flags, len(completed), len(content.Lessons(s.content))), nil
}
