package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/brk3/flexhabits/internal/server"
	"github.com/brk3/flexhabits/pkg/habit"
	"github.com/brk3/flexhabits/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(base, token string) *Client {
	return &Client{
		BaseURL: base,
		Token:   token,
		HTTP:    http.DefaultClient,
	}
}

// APIError carries the status and message of a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var er server.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&er); err == nil {
			apiErr.Message = er.Error
		}
		return apiErr
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func withDate(path, date string) string {
	if date == "" {
		return path
	}
	return path + "?date=" + url.QueryEscape(date)
}

func (c *Client) Version(ctx context.Context) (versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	err := c.do(ctx, http.MethodGet, "/version", nil, &out)
	return out, err
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	var response server.HabitListResponse
	if err := c.do(ctx, http.MethodGet, "/habits", nil, &response); err != nil {
		return nil, err
	}
	return response.Habits, nil
}

func (c *Client) CreateHabit(ctx context.Context, req server.CreateHabitRequest) (habit.Habit, error) {
	var out habit.Habit
	err := c.do(ctx, http.MethodPost, "/habits", req, &out)
	return out, err
}

func (c *Client) GetHabit(ctx context.Context, id string) (*server.HabitGetResponse, error) {
	var out server.HabitGetResponse
	if err := c.do(ctx, http.MethodGet, "/habits/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/habits/"+url.PathEscape(id), nil, nil)
}

func (c *Client) LogCompletion(ctx context.Context, id string, req server.LogCompletionRequest) (habit.Completion, error) {
	var out habit.Completion
	err := c.do(ctx, http.MethodPost, "/habits/"+url.PathEscape(id)+"/completions", req, &out)
	return out, err
}

func (c *Client) PauseHabit(ctx context.Context, id, endDate string) (habit.Habit, error) {
	var out habit.Habit
	err := c.do(ctx, http.MethodPost, "/habits/"+url.PathEscape(id)+"/pause", server.PauseRequest{EndDate: endDate}, &out)
	return out, err
}

func (c *Client) ResumeHabit(ctx context.Context, id string) (habit.Habit, error) {
	var out habit.Habit
	err := c.do(ctx, http.MethodPost, "/habits/"+url.PathEscape(id)+"/resume", nil, &out)
	return out, err
}

// GetHabitSummary fetches the summary as of date; empty means the server's today.
func (c *Client) GetHabitSummary(ctx context.Context, id, date string) (*habit.HabitSummary, error) {
	var out habit.HabitSummary
	if err := c.do(ctx, http.MethodGet, withDate("/habits/"+url.PathEscape(id)+"/summary", date), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeeklyInsight fetches the week containing date. A negative weekStart uses
// the server's configured day.
func (c *Client) WeeklyInsight(ctx context.Context, date string, weekStart int) (habit.WeeklyInsight, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if weekStart >= 0 {
		q.Set("week_start", strconv.Itoa(weekStart))
	}
	path := "/insights/weekly"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out habit.WeeklyInsight
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Coaching(ctx context.Context, date string) (server.CoachingResponse, error) {
	var out server.CoachingResponse
	err := c.do(ctx, http.MethodGet, withDate("/coaching", date), nil, &out)
	return out, err
}

func (c *Client) LogMood(ctx context.Context, req server.LogMoodRequest) (habit.Mood, error) {
	var out habit.Mood
	err := c.do(ctx, http.MethodPost, "/moods", req, &out)
	return out, err
}

// ListMoods lists moods between start and end; either bound may be empty.
func (c *Client) ListMoods(ctx context.Context, start, end string) ([]habit.Mood, error) {
	q := url.Values{}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	path := "/moods"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out server.MoodListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Moods, nil
}

func (c *Client) MoodInsight(ctx context.Context, date string) (server.MoodInsightResponse, error) {
	var out server.MoodInsightResponse
	err := c.do(ctx, http.MethodGet, withDate("/insights/mood", date), nil, &out)
	return out, err
}
