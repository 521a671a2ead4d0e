package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTime   = errors.New("invalid_time")
	ErrInvalidWindow = errors.New("invalid_window")
	ErrInvalidLunch  = errors.New("invalid_lunch")
	ErrInvalidStep   = errors.New("invalid_step")
	ErrInvalidDay    = errors.New("invalid_weekday")
)

// ===============================
// Day / Week
// ===============================

type DaySchedule struct {
	IsWorking   bool   `json:"is_working"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	LunchStart  string `json:"lunch_start"`
	LunchEnd    string `json:"lunch_end"`
	StepMinutes int    `json:"step_minutes"`
}

// WeekSchedule é indexado por time.Weekday (domingo = 0), sempre com os sete dias.
type WeekSchedule [7]DaySchedule

func (w *WeekSchedule) Day(d time.Weekday) DaySchedule {
	if w == nil || d < time.Sunday || d > time.Saturday {
		return DaySchedule{}
	}
	return w[d]
}

func (w *WeekSchedule) Set(d time.Weekday, day DaySchedule) {
	if d < time.Sunday || d > time.Saturday {
		return
	}
	w[d] = day
}

func (d DaySchedule) HasLunch() bool {
	return d.LunchStart != "" || d.LunchEnd != ""
}

// Validate rejeita registros malformados antes de chegarem ao gerador.
func (d DaySchedule) Validate() error {
	if !d.IsWorking {
		return nil
	}

	start, err := ParseHM(d.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseHM(d.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("%s-%s: %w", d.StartTime, d.EndTime, ErrInvalidWindow)
	}

	if d.StepMinutes <= 0 {
		return fmt.Errorf("step_minutes=%d: %w", d.StepMinutes, ErrInvalidStep)
	}

	if !d.HasLunch() {
		return nil
	}
	if d.LunchStart == "" || d.LunchEnd == "" {
		return fmt.Errorf("lunch needs start and end: %w", ErrInvalidLunch)
	}

	lunchStart, err := ParseHM(d.LunchStart)
	if err != nil {
		return fmt.Errorf("lunch_start: %w", err)
	}
	lunchEnd, err := ParseHM(d.LunchEnd)
	if err != nil {
		return fmt.Errorf("lunch_end: %w", err)
	}
	if start > lunchStart || lunchStart > lunchEnd || lunchEnd > end {
		return fmt.Errorf("%s-%s outside %s-%s: %w",
			d.LunchStart, d.LunchEnd, d.StartTime, d.EndTime, ErrInvalidLunch)
	}

	return nil
}

func (w *WeekSchedule) Validate() error {
	if w == nil {
		return nil
	}
	for i, d := range w {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%s: %w", WeekdayKey(time.Weekday(i)), err)
		}
	}
	return nil
}

// DefaultWeekSchedule é o expediente usado quando nem o barbeiro
// nem a barbearia configuraram horários.
func DefaultWeekSchedule() WeekSchedule {
	workday := DaySchedule{
		IsWorking:   true,
		StartTime:   "09:00",
		EndTime:     "19:00",
		LunchStart:  "12:00",
		LunchEnd:    "13:00",
		StepMinutes: 30,
	}

	var w WeekSchedule
	for d := time.Monday; d <= time.Saturday; d++ {
		w[d] = workday
	}
	w[time.Sunday] = DaySchedule{IsWorking: false, StepMinutes: 30}
	return w
}

// ===============================
// HH:MM helpers
// ===============================

func ParseHM(hm string) (int, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 || !twoDigits(parts[0]) || !twoDigits(parts[1]) {
		return 0, fmt.Errorf("%q: %w", hm, ErrInvalidTime)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%q: %w", hm, ErrInvalidTime)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%q: %w", hm, ErrInvalidTime)
	}

	return h*60 + m, nil
}

// twoDigits barra sinais e espaços que strconv.Atoi aceitaria ("+8", "-0").
func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

var weekdayKeys = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

func WeekdayKey(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayKeys[d]
}

func ParseWeekdayKey(key string) (time.Weekday, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range weekdayKeys {
		if k == key {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", key, ErrInvalidDay)
}
