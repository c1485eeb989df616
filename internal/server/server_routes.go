package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/flexhabits/internal/analytics"
	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/internal/logger"
	"github.com/brk3/flexhabits/pkg/habit"
	"github.com/brk3/flexhabits/pkg/versioninfo"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	if err := writeJSON(w, http.StatusOK, versioninfo.Get()); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
	}
}

func (s *Server) today() string {
	return calendar.Today(s.now())
}

// dateParam returns the ?date= query value, defaulting to today.
func (s *Server) dateParam(r *http.Request) (string, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return s.today(), nil
	}
	if _, err := calendar.ParseDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// decodeOptional decodes a JSON body, treating an empty body as zero values.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.Error("Failed to list habits", "error", err)
		fail(w, err)
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		habits = slices.DeleteFunc(habits, func(h habit.Habit) bool {
			return string(h.Status) != status
		})
	}
	logger.Debug("Listed habits successfully", "count", len(habits))
	if err := writeJSON(w, http.StatusOK, HabitListResponse{Habits: habits}); err != nil {
		logger.Error("Failed to serialize habit list response", "error", err)
	}
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in create habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Frequency == "" {
		req.Frequency = habit.Daily
	}
	if err := validateHabit(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.store.ListHabits()
	if err != nil {
		logger.Error("Failed to list habits", "error", err)
		fail(w, err)
		return
	}
	limit, err := s.habitLimit(existing)
	if err != nil {
		logger.Error("Failed to compute habit limit", "error", err)
		fail(w, err)
		return
	}
	if countActive(existing) >= limit {
		logger.Info("Habit limit reached", "limit", limit)
		writeError(w, http.StatusConflict,
			fmt.Sprintf("you can have up to %d active habits; keep 60%% consistency for 2 weeks to unlock more", limit))
		return
	}

	now := s.now().Unix()
	h := habit.Habit{
		Schedule: habit.Schedule{
			ID:             uuid.NewString(),
			Frequency:      req.Frequency,
			CustomDays:     req.CustomDays,
			FlexibleTarget: req.FlexibleTarget,
			Status:         habit.Active,
		},
		Name:      req.Name,
		Cue:       req.Cue,
		Action:    req.Action,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if h.Frequency != habit.Custom {
		h.CustomDays = nil
	}
	if h.Frequency != habit.Flexible {
		h.FlexibleTarget = 0
	}

	logger.Info("Storing habit", "habit_id", h.ID, "habit_name", h.Name, "frequency", h.Frequency)
	if err := s.store.PutHabit(h); err != nil {
		logger.Error("Failed to store habit", "habit_name", h.Name, "error", err)
		fail(w, err)
		return
	}
	s.refreshGauges()

	if err := writeJSON(w, http.StatusCreated, h); err != nil {
		logger.Error("Failed to serialize create habit response", "habit_id", h.ID, "error", err)
	}
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, err := s.store.GetHabit(habitID)
	if err != nil {
		logger.Debug("Failed to get habit", "habit_id", habitID, "error", err)
		fail(w, err)
		return
	}
	comps, err := s.store.ListCompletions(habitID, "", "")
	if err != nil {
		logger.Error("Failed to list completions", "habit_id", habitID, "error", err)
		fail(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, HabitGetResponse{Habit: h, Completions: comps}); err != nil {
		logger.Error("Failed to serialize get habit response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	logger.Info("Deleting habit", "habit_id", habitID)
	if err := s.store.DeleteHabit(habitID); err != nil {
		logger.Warn("Failed to delete habit", "habit_id", habitID, "error", err)
		fail(w, err)
		return
	}
	s.refreshGauges()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) logCompletion(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, err := s.store.GetHabit(habitID)
	if err != nil {
		fail(w, err)
		return
	}

	var req LogCompletionRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	today := s.today()
	if req.Date == "" {
		req.Date = today
	}
	if req.Status == "" {
		req.Status = habit.Completed
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		fail(w, err)
		return
	}
	if req.Date > today {
		writeError(w, http.StatusBadRequest, "cannot log a future date")
		return
	}
	switch req.Status {
	case habit.Completed, habit.Missed, habit.Skipped, habit.PausedRecord:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
		return
	}
	if req.Status != habit.PausedRecord {
		ok, err := analytics.CanTrack(h.Schedule, req.Date)
		if err != nil {
			fail(w, err)
			return
		}
		if !ok {
			writeError(w, http.StatusConflict, fmt.Sprintf("habit cannot be tracked on %s", req.Date))
			return
		}
	}

	c := habit.Completion{
		ID:          uuid.NewString(),
		HabitID:     habitID,
		Date:        req.Date,
		Status:      req.Status,
		ContextTag:  req.ContextTag,
		ContextNote: req.ContextNote,
	}
	if c.Status == habit.Completed {
		c.CompletedAt = s.now().Unix()
	}
	saved, err := s.store.PutCompletion(c)
	if err != nil {
		logger.Error("Failed to store completion", "habit_id", habitID, "date", req.Date, "error", err)
		fail(w, err)
		return
	}
	completionsLogged.WithLabelValues(string(saved.Status)).Inc()
	logger.Info("Completion logged", "habit_id", habitID, "date", saved.Date, "status", saved.Status)

	if err := writeJSON(w, http.StatusCreated, saved); err != nil {
		logger.Error("Failed to serialize completion response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) pauseHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, err := s.store.GetHabit(habitID)
	if err != nil {
		fail(w, err)
		return
	}
	var req PauseRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	today := s.today()
	if req.EndDate != "" {
		if _, err := calendar.ParseDate(req.EndDate); err != nil {
			fail(w, err)
			return
		}
		if req.EndDate < today {
			writeError(w, http.StatusBadRequest, "end_date is in the past")
			return
		}
	}
	if h.Status == habit.Archived {
		writeError(w, http.StatusConflict, "archived habits cannot be paused")
		return
	}

	// The marker goes first so a failed write leaves the habit untouched.
	existing, err := s.store.ListCompletions(habitID, today, today)
	if err != nil {
		fail(w, err)
		return
	}
	if len(existing) == 0 {
		marker := habit.Completion{ID: uuid.NewString(), HabitID: habitID, Date: today, Status: habit.PausedRecord}
		if _, err := s.store.PutCompletion(marker); err != nil {
			logger.Error("Failed to record pause marker", "habit_id", habitID, "error", err)
			fail(w, err)
			return
		}
	}

	h.Status = habit.Paused
	h.PauseEndDate = req.EndDate
	h.UpdatedAt = s.now().Unix()
	if err := s.store.PutHabit(h); err != nil {
		logger.Error("Failed to pause habit", "habit_id", habitID, "error", err)
		fail(w, err)
		return
	}
	s.refreshGauges()
	logger.Info("Habit paused", "habit_id", habitID, "until", h.PauseEndDate)

	if err := writeJSON(w, http.StatusOK, h); err != nil {
		logger.Error("Failed to serialize pause response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) resumeHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, err := s.store.GetHabit(habitID)
	if err != nil {
		fail(w, err)
		return
	}
	if h.Status != habit.Paused {
		writeError(w, http.StatusConflict, "habit is not paused")
		return
	}
	h.Status = habit.Active
	h.PauseEndDate = ""
	h.UpdatedAt = s.now().Unix()
	if err := s.store.PutHabit(h); err != nil {
		logger.Error("Failed to resume habit", "habit_id", habitID, "error", err)
		fail(w, err)
		return
	}
	s.refreshGauges()
	logger.Info("Habit resumed", "habit_id", habitID)

	if err := writeJSON(w, http.StatusOK, h); err != nil {
		logger.Error("Failed to serialize resume response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) getHabitSummary(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	date, err := s.dateParam(r)
	if err != nil {
		fail(w, err)
		return
	}
	logger.Debug("Getting habit summary", "habit_id", habitID, "date", date)

	h, err := s.store.GetHabit(habitID)
	if err != nil {
		fail(w, err)
		return
	}
	comps, err := s.store.ListCompletions(habitID, "", date)
	if err != nil {
		logger.Error("Failed to list completions", "habit_id", habitID, "error", err)
		fail(w, err)
		return
	}
	summary, err := s.summarize(h, comps, date)
	if err != nil {
		logger.Error("Failed to compute summary", "habit_id", habitID, "error", err)
		fail(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, summary); err != nil {
		logger.Error("Failed to serialize habit summary response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) summarize(h habit.Habit, comps []habit.Completion, date string) (habit.HabitSummary, error) {
	start := time.Now()
	defer func() { analyticsDuration.WithLabelValues("flexstreak").Observe(time.Since(start).Seconds()) }()
	return analytics.Summarize(h, comps, date, analytics.WithLookback(s.cfg.Analytics.LookbackDays))
}

func (s *Server) getWeeklyInsight(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		fail(w, err)
		return
	}
	weekStart := s.cfg.Analytics.WeekStartDay
	if v := r.URL.Query().Get("week_start"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 6 {
			writeError(w, http.StatusBadRequest, "week_start must be 0-6")
			return
		}
		weekStart = n
	}

	start, end, err := analytics.WeekRange(date, weekStart)
	if err != nil {
		fail(w, err)
		return
	}
	prevStart, err := calendar.AddDays(start, -7)
	if err != nil {
		fail(w, err)
		return
	}
	habits, err := s.store.ListHabits()
	if err != nil {
		fail(w, err)
		return
	}
	comps, err := s.store.ListCompletionsInRange(prevStart, end)
	if err != nil {
		logger.Error("Failed to list completions for weekly insight", "error", err)
		fail(w, err)
		return
	}

	began := time.Now()
	insight, err := analytics.WeeklyInsight(habits, comps, date, weekStart)
	analyticsDuration.WithLabelValues("weekly").Observe(time.Since(began).Seconds())
	if err != nil {
		logger.Error("Failed to compute weekly insight", "date", date, "error", err)
		fail(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, insight); err != nil {
		logger.Error("Failed to serialize weekly insight", "error", err)
	}
}

func (s *Server) getCoaching(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		fail(w, err)
		return
	}
	habits, err := s.store.ListHabits()
	if err != nil {
		fail(w, err)
		return
	}

	streaks := make(map[string]habit.FlexStreak, len(habits))
	experiments := []habit.Experiment{}
	for _, h := range habits {
		if h.Status != habit.Active {
			continue
		}
		comps, err := s.store.ListCompletions(h.ID, "", date)
		if err != nil {
			fail(w, err)
			return
		}
		summary, err := s.summarize(h, comps, date)
		if err != nil {
			logger.Error("Failed to compute flexstreak", "habit_id", h.ID, "error", err)
			fail(w, err)
			return
		}
		streaks[h.ID] = summary.FlexStreak
		if exp, ok := analytics.SuggestExperiment(h, summary.FlexStreak); ok {
			experiments = append(experiments, exp)
		}
	}

	tracked := daysTracked(habits, date, s.now().Location())
	resp := CoachingResponse{
		Date:        date,
		DaysTracked: tracked,
		Tips:        analytics.CoachingTips(habits, streaks, tracked),
		Experiments: experiments,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize coaching response", "error", err)
	}
}

// daysTracked counts days since the oldest habit was created, up to date.
// The creation day is taken in loc, the zone date was computed in.
func daysTracked(habits []habit.Habit, date string, loc *time.Location) int {
	if len(habits) == 0 {
		return 0
	}
	oldest := habits[0].CreatedAt
	for _, h := range habits[1:] {
		oldest = min(oldest, h.CreatedAt)
	}
	n, err := calendar.DaysBetween(calendar.FormatDate(time.Unix(oldest, 0).In(loc)), date)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// habitLimit pools the last 14 days of completions to decide whether the
// extra habit slot is unlocked.
func (s *Server) habitLimit(habits []habit.Habit) (int, error) {
	today := s.today()
	start, err := calendar.AddDays(today, -13)
	if err != nil {
		return 0, err
	}
	comps, err := s.store.ListCompletionsInRange(start, today)
	if err != nil {
		return 0, err
	}
	return analytics.HabitLimit(habits, comps, today)
}

func countActive(habits []habit.Habit) int {
	n := 0
	for _, h := range habits {
		if h.Status == habit.Active {
			n++
		}
	}
	return n
}

func (s *Server) logMood(w http.ResponseWriter, r *http.Request) {
	var req LogMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	today := s.today()
	if req.Date == "" {
		req.Date = today
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		fail(w, err)
		return
	}
	if req.Date > today {
		writeError(w, http.StatusBadRequest, "cannot log a future date")
		return
	}
	if req.Rating < habit.MinMood || req.Rating > habit.MaxMood {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("rating must be %d-%d", habit.MinMood, habit.MaxMood))
		return
	}

	m, err := s.store.PutMood(habit.Mood{
		ID:        uuid.NewString(),
		Date:      req.Date,
		Rating:    req.Rating,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: s.now().Unix(),
	})
	if err != nil {
		logger.Error("Failed to store mood", "date", req.Date, "error", err)
		fail(w, err)
		return
	}
	logger.Info("Mood logged", "date", m.Date, "rating", m.Rating)

	if err := writeJSON(w, http.StatusCreated, m); err != nil {
		logger.Error("Failed to serialize mood response", "error", err)
	}
}

func (s *Server) listMoods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := calendar.ParseDate(d); err != nil {
			fail(w, err)
			return
		}
	}
	if start != "" && end != "" && end < start {
		writeError(w, http.StatusBadRequest, "end is before start")
		return
	}

	moods, err := s.store.ListMoods(start, end)
	if err != nil {
		logger.Error("Failed to list moods", "error", err)
		fail(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, MoodListResponse{Moods: moods}); err != nil {
		logger.Error("Failed to serialize mood list", "error", err)
	}
}

func (s *Server) getMoodInsight(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		fail(w, err)
		return
	}
	start, err := calendar.AddDays(date, -(analytics.MoodWindowDays - 1))
	if err != nil {
		fail(w, err)
		return
	}
	habits, err := s.store.ListHabits()
	if err != nil {
		fail(w, err)
		return
	}
	moods, err := s.store.ListMoods(start, date)
	if err != nil {
		logger.Error("Failed to list moods for mood insight", "error", err)
		fail(w, err)
		return
	}
	comps, err := s.store.ListCompletionsInRange(start, date)
	if err != nil {
		logger.Error("Failed to list completions for mood insight", "error", err)
		fail(w, err)
		return
	}

	began := time.Now()
	correlations := analytics.MoodCorrelations(habits, comps, moods)
	analyticsDuration.WithLabelValues("mood").Observe(time.Since(began).Seconds())

	resp := MoodInsightResponse{
		Start:        start,
		End:          date,
		RatedDays:    len(moods),
		Correlations: correlations,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize mood insight", "error", err)
	}
}

func (s *Server) refreshGauges() {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.Warn("Failed to update habit gauges", "error", err)
		return
	}
	updateHabitGauges(habits)
}

func validateHabit(req CreateHabitRequest) error {
	const maxNameLength = 64
	const maxIntentionLength = 256

	if len(req.Name) == 0 || len(req.Name) > maxNameLength {
		return fmt.Errorf("bad habit name: must be 1-%d characters", maxNameLength)
	}
	if len(req.Cue) > maxIntentionLength || len(req.Action) > maxIntentionLength {
		return fmt.Errorf("bad implementation intention: must be 0-%d characters", maxIntentionLength)
	}

	switch req.Frequency {
	case habit.Daily, habit.Weekdays:
	case habit.Custom:
		if len(req.CustomDays) == 0 {
			return fmt.Errorf("custom frequency needs at least one day")
		}
		seen := [7]bool{}
		for _, d := range req.CustomDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("bad custom day %d: must be 0-6", d)
			}
			if seen[d] {
				return fmt.Errorf("duplicate custom day %d", d)
			}
			seen[d] = true
		}
	case habit.Flexible:
		if req.FlexibleTarget < 0 || req.FlexibleTarget > 7 {
			return fmt.Errorf("bad flexible target: must be 0-7")
		}
	default:
		return fmt.Errorf("unknown frequency %q", req.Frequency)
	}
	return nil
}
