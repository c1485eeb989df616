package habit

type Frequency string

const (
	Daily    Frequency = "daily"
	Weekdays Frequency = "weekdays"
	Custom   Frequency = "custom"
	Flexible Frequency = "flexible"
)

type Status string

const (
	Active   Status = "active"
	Paused   Status = "paused"
	Archived Status = "archived"
)

type CompletionStatus string

const (
	Completed    CompletionStatus = "completed"
	Missed       CompletionStatus = "missed"
	Skipped      CompletionStatus = "skipped"
	PausedRecord CompletionStatus = "paused"
)

// DefaultTarget is the weekly target shown for flexible habits without one.
const DefaultTarget = 3

type Trend string

const (
	TrendUp     Trend = "up"
	TrendStable Trend = "stable"
	TrendDown   Trend = "down"
)

// Schedule is the part of a habit the analytics read.
type Schedule struct {
	ID             string    `json:"id"`
	Frequency      Frequency `json:"frequency"`
	CustomDays     []int     `json:"custom_days,omitempty"`
	FlexibleTarget int       `json:"flexible_target,omitempty"`
	Status         Status    `json:"status"`
	PauseEndDate   string    `json:"pause_end_date,omitempty"`
}

type Habit struct {
	Schedule
	Name      string `json:"name"`
	Cue       string `json:"cue,omitempty"`
	Action    string `json:"action,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type Completion struct {
	ID          string           `json:"id"`
	HabitID     string           `json:"habit_id"`
	Date        string           `json:"date"`
	Status      CompletionStatus `json:"status"`
	ContextTag  string           `json:"context_tag,omitempty"`
	ContextNote string           `json:"context_note,omitempty"`
	CompletedAt int64            `json:"completed_at,omitempty"`
}

type FlexStreak struct {
	Consistency7     int    `json:"consistency_7"`
	Consistency30    int    `json:"consistency_30"`
	Consistency90    int    `json:"consistency_90"`
	CurrentStreak    int    `json:"current_streak"`
	BestStreak       int    `json:"best_streak"`
	TotalCompletions int    `json:"total_completions"`
	Trend            Trend  `json:"trend"`
	Strength         string `json:"strength"`
	StrengthColor    string `json:"strength_color"`
}

type HabitSummary struct {
	HabitID        string     `json:"habit_id"`
	Name           string     `json:"name"`
	FrequencyLabel string     `json:"frequency_label"`
	Date           string     `json:"date"`
	DueToday       bool       `json:"due_today"`
	CompletedToday bool       `json:"completed_today"`
	FlexStreak     FlexStreak `json:"flex_streak"`
}

type HabitStrength struct {
	HabitID    string `json:"habit_id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

type WeeklyInsight struct {
	WeekStart           string          `json:"week_start"`
	WeekEnd             string          `json:"week_end"`
	OverallConsistency  int             `json:"overall_consistency"`
	PreviousConsistency int             `json:"previous_consistency"`
	BestDay             string          `json:"best_day"`
	BestDayPercentage   int             `json:"best_day_percentage"`
	WorstDay            string          `json:"worst_day"`
	WorstDayPercentage  int             `json:"worst_day_percentage"`
	HabitStrengths      []HabitStrength `json:"habit_strengths"`
	TotalCompletions    int             `json:"total_completions"`
	Insights            []string        `json:"insights"`
}

// Mood ratings run from MinMood to MaxMood. There is at most one mood per day.
const (
	MinMood = 1
	MaxMood = 5
)

type Mood struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Rating    int    `json:"rating"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// MoodCorrelation compares the average mood on days a habit was completed
// with the average on the other rated days. Values are rounded to 0.1.
type MoodCorrelation struct {
	HabitID             string  `json:"habit_id"`
	HabitName           string  `json:"habit_name"`
	AvgMoodWithHabit    float64 `json:"avg_mood_with_habit"`
	AvgMoodWithoutHabit float64 `json:"avg_mood_without_habit"`
	Difference          float64 `json:"difference"`
}

type Experiment struct {
	ID           string `json:"id"`
	HabitID      string `json:"habit_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days"`
	Variant      string `json:"variant"`
}
