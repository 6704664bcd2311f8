package core

import "math"

// MaxPromotionProgress caps the job promotion counter.
const MaxPromotionProgress = 350

var (
	levelBreakpoints = []int{0, 25, 75, 150, 250, 350}
	jobTitles        = []string{"Newbie", "Apprentice", "Professional", "Expert", "Master", "Legend"}
	promotionGoals   = []int{25, 75, 150, 250, 349, 350}
	jobIncomes       = []float64{950.24, 1094.43, 1175.73, 1245.89, 1325.13, 1400.24}
)

// PromotionLevel maps a progress counter to a level in [0, 5].
func PromotionLevel(progress int) int {
	level := 0
	for i, floor := range levelBreakpoints {
		if progress >= floor {
			level = i
		}
	}
	return level
}

func JobTitle(level int) string {
	return jobTitles[clampLevel(level)]
}

// PromotionGoal is the progress value that completes the given level.
func PromotionGoal(level int) int {
	return promotionGoals[clampLevel(level)]
}

func JobIncome(level int) float64 {
	return jobIncomes[clampLevel(level)]
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level >= len(levelBreakpoints) {
		return len(levelBreakpoints) - 1
	}
	return level
}

func (j Job) Level() int { return PromotionLevel(j.PromotionProgress) }
func (j Job) Title() string { return JobTitle(j.Level()) }
func (j Job) Goal() int { return PromotionGoal(j.Level()) }
func (j Job) Income() float64 { return JobIncome(j.Level()) }
func (j Job) IsMaxLevel() bool { return j.Level() == len(levelBreakpoints)-1 }

// PromotionAward returns the points earned for a three-question quiz.
// Nothing is awarded for zero correct answers.
func PromotionAward(correctCount, level int) int {
	var base int
	switch {
	case correctCount <= 0:
		return 0
	case correctCount == 1:
		base = 5
	case correctCount == 2:
		base = 10
	default:
		base = 15
	}
	return base + int(math.Ceil(float64(level)*0.2))
}

// Award applies quiz points to the job. Progress is clamped at the maximum
// and never decreases.
func (j Job) Award(correctCount int) (Job, int) {
	before := j.PromotionProgress
	j.PromotionProgress += PromotionAward(correctCount, j.Level())
	if j.PromotionProgress > MaxPromotionProgress {
		j.PromotionProgress = MaxPromotionProgress
	}
	if j.PromotionProgress < before {
		j.PromotionProgress = before
	}
	return j, j.PromotionProgress - before
}
