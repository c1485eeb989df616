package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brk3/flexhabits/internal/analytics"
	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/internal/storage"
	"github.com/brk3/flexhabits/pkg/habit"
)

type HabitListResponse struct {
	Habits []habit.Habit `json:"habits"`
}

type HabitGetResponse struct {
	Habit       habit.Habit        `json:"habit"`
	Completions []habit.Completion `json:"completions"`
}

type CoachingResponse struct {
	Date        string                  `json:"date"`
	DaysTracked int                     `json:"days_tracked"`
	Tips        []analytics.CoachingTip `json:"tips"`
	Experiments []habit.Experiment      `json:"experiments"`
}

type MoodListResponse struct {
	Moods []habit.Mood `json:"moods"`
}

type MoodInsightResponse struct {
	Start        string                  `json:"start"`
	End          string                  `json:"end"`
	RatedDays    int                     `json:"rated_days"`
	Correlations []habit.MoodCorrelation `json:"correlations"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateHabitRequest struct {
	Name           string          `json:"name"`
	Frequency      habit.Frequency `json:"frequency"`
	CustomDays     []int           `json:"custom_days,omitempty"`
	FlexibleTarget int             `json:"flexible_target,omitempty"`
	Cue            string          `json:"cue,omitempty"`
	Action         string          `json:"action,omitempty"`
}

type LogCompletionRequest struct {
	Date        string                 `json:"date,omitempty"`
	Status      habit.CompletionStatus `json:"status,omitempty"`
	ContextTag  string                 `json:"context_tag,omitempty"`
	ContextNote string                 `json:"context_note,omitempty"`
}

type LogMoodRequest struct {
	Date   string `json:"date,omitempty"`
	Rating int    `json:"rating"`
	Note   string `json:"note,omitempty"`
}

type PauseRequest struct {
	EndDate string `json:"end_date,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	_ = writeJSON(w, code, ErrorResponse{Error: msg})
}

// statusFor maps domain and storage errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, calendar.ErrMalformedDate), errors.Is(err, calendar.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Server errors hide the detail.
func fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		writeError(w, code, "internal error")
		return
	}
	writeError(w, code, err.Error())
}
