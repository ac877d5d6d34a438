package visionapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the fixed-width UTC layout used for replication timestamps.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp is a time that travels as a fixed-width UTC string.
// It decodes any RFC 3339 string, and null or "" as the zero time.
type Timestamp time.Time

func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	tm := time.Time(t)
	if tm.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(tm.UTC().Format(TimeLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	tm, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Backends that drop the zone suffix send naive UTC.
		tm, err = time.Parse("2006-01-02T15:04:05.999999999", s)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", s, err)
		}
	}
	*t = Timestamp(tm.UTC())
	return nil
}

// StringList is a list of strings that travels as a JSON-encoded string
// (e.g. "[\"a\",\"b\"]"). Decoding also accepts a raw JSON array.
type StringList []string

func (l StringList) MarshalJSON() ([]byte, error) {
	items := []string(l)
	if items == nil {
		items = []string{}
	}
	inner, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*l = StringList{}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("prepared items: %w", err)
		}
		*l = StringList(items)
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("prepared items: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*l = StringList{}
		return nil
	}
	items := []string{}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return fmt.Errorf("prepared items %q: %w", s, err)
	}
	*l = StringList(items)
	return nil
}

// --- Replication ---

// TaskDocument is a task as exchanged with /api/sync/tasks.
type TaskDocument struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Source        string     `json:"source"`
	EstimatedTime string     `json:"estimated_time"`
	PreparedItems StringList `json:"prepared_items"`
	Position      int        `json:"position"`
	Deleted       bool       `json:"deleted"`
	CreatedAt     Timestamp  `json:"created_at"`
	UpdatedAt     Timestamp  `json:"updated_at"`
}

// Checkpoint is the server's replication cursor.
type Checkpoint struct {
	ID        string    `json:"id"`
	UpdatedAt Timestamp `json:"updated_at"`
}

type PullRequest struct {
	MinUpdatedAt time.Time // zero pulls from the beginning
	Limit        int
}

type PullResponse struct {
	Documents  []TaskDocument `json:"documents"`
	Checkpoint *Checkpoint    `json:"checkpoint"`
}

// --- Auth ---

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// --- Resources ---

type PreparedTask struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PreparedItems []string `json:"preparedItems"`
	EstimatedTime string   `json:"estimatedTime"`
	Source        string   `json:"source"`
	Status        string   `json:"status"`
}

type Proposal struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Payload     string    `json:"payload"`
	Status      string    `json:"status"`
	CreatedAt   Timestamp `json:"created_at"`
}

type SnapshotWindow struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type Snapshot struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Windows   []SnapshotWindow `json:"windows"`
	Notes     string           `json:"notes"`
	CreatedAt Timestamp        `json:"created_at"`
}

type CreateSnapshotRequest struct {
	Name    string           `json:"name"`
	Notes   string           `json:"notes,omitempty"`
	Windows []SnapshotWindow `json:"windows,omitempty"`
}

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	MaxLevel int    `json:"maxLevel"`
	Exp      int    `json:"exp"`
	Unlocked bool   `json:"unlocked"`
}

type DayStats struct {
	Day   string  `json:"day"`
	Tasks int     `json:"tasks"`
	Hours float64 `json:"hours"`
}

type StatsSummary struct {
	TotalTasks      int     `json:"totalTasks"`
	TotalHours      float64 `json:"totalHours"`
	Streak          int     `json:"streak"`
	AchievementRate int     `json:"achievementRate"`
}

type WeeklyStats struct {
	Data    []DayStats   `json:"data"`
	Summary StatsSummary `json:"summary"`
}

type WeekStats struct {
	Week      string `json:"week"`
	Completed int    `json:"completed"`
}

type SkillShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type MonthlyStats struct {
	Data              []WeekStats  `json:"data"`
	SkillDistribution []SkillShare `json:"skillDistribution"`
}

type LossData struct {
	HourlyRate  int `json:"hourlyRate"`
	IdleMinutes int `json:"idleMinutes"`
}

// --- AI ---

type DreamAnalysisRequest struct {
	Dream          string `json:"dream"`
	TargetDuration string `json:"targetDuration,omitempty"`
}

type DreamSubTask struct {
	Week         string `json:"week"`
	Task         string `json:"task"`
	FreeResource string `json:"freeResource,omitempty"`
	PaidResource string `json:"paidResource,omitempty"`
}

type DreamStep struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    string         `json:"duration"`
	Status      string         `json:"status"`
	SubTasks    []DreamSubTask `json:"subTasks,omitempty"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}
