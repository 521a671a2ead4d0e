package schedule

import "time"

// TakenSet guarda os horários "HH:MM" já reservados para um barbeiro em uma data.
type TakenSet map[string]struct{}

func NewTakenSet(times ...string) TakenSet {
	s := make(TakenSet, len(times))
	for _, t := range times {
		s[t] = struct{}{}
	}
	return s
}

func (s TakenSet) Has(hm string) bool {
	_, ok := s[hm]
	return ok
}

func (s TakenSet) Add(hm string) {
	s[hm] = struct{}{}
}

type window struct {
	start, end           int
	lunchStart, lunchEnd int
	hasLunch             bool
	step                 int
}

func resolveWindow(date time.Time, week *WeekSchedule) (window, bool) {
	if week == nil || date.IsZero() {
		return window{}, false
	}

	day := week.Day(date.Weekday())
	if !day.IsWorking || day.StepMinutes <= 0 {
		return window{}, false
	}

	start, err := ParseHM(day.StartTime)
	if err != nil {
		return window{}, false
	}
	end, err := ParseHM(day.EndTime)
	if err != nil {
		return window{}, false
	}

	w := window{start: start, end: end, step: day.StepMinutes}

	if day.HasLunch() {
		if w.lunchStart, err = ParseHM(day.LunchStart); err != nil {
			return window{}, false
		}
		if w.lunchEnd, err = ParseHM(day.LunchEnd); err != nil {
			return window{}, false
		}
		w.hasLunch = true
	}

	return w, true
}

func (w window) inLunch(m int) bool {
	return w.hasLunch && w.lunchStart <= m && m < w.lunchEnd
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// GenerateSlots devolve os horários livres de date em ordem crescente.
// Entrada ausente ou malformada resulta em lista vazia, nunca em erro.
// No dia de hoje o minuto atual também é descartado (m <= agora).
func GenerateSlots(
	date time.Time,
	week *WeekSchedule,
	now time.Time,
	taken TakenSet,
) []string {

	slots := []string{}

	w, ok := resolveWindow(date, week)
	if !ok {
		return slots
	}

	today := sameDay(date, now)
	nowMin := MinuteOfDay(now)

	for m := w.start; m < w.end; m += w.step {
		if w.inLunch(m) {
			continue
		}
		if today && m <= nowMin {
			continue
		}

		hm := FormatHM(m)
		if taken.Has(hm) {
			continue
		}
		slots = append(slots, hm)
	}

	return slots
}

// IsSlotAllowed checa um único horário contra as mesmas regras do GenerateSlots,
// incluindo o alinhamento ao passo do expediente.
func IsSlotAllowed(
	date time.Time,
	week *WeekSchedule,
	now time.Time,
	taken TakenSet,
	hm string,
) bool {

	w, ok := resolveWindow(date, week)
	if !ok {
		return false
	}

	m, err := ParseHM(hm)
	if err != nil {
		return false
	}

	if m < w.start || m >= w.end || (m-w.start)%w.step != 0 {
		return false
	}
	if w.inLunch(m) {
		return false
	}
	if sameDay(date, now) && m <= MinuteOfDay(now) {
		return false
	}
	return !taken.Has(hm)
}

// FitsWorkingWindow indica se o intervalo [start, start+duration) cabe
// inteiro no expediente sem invadir o almoço.
func FitsWorkingWindow(date time.Time, week *WeekSchedule, startHM string, durationMin int) bool {
	w, ok := resolveWindow(date, week)
	if !ok || durationMin <= 0 {
		return false
	}

	start, err := ParseHM(startHM)
	if err != nil {
		return false
	}
	end := start + durationMin

	if start < w.start || end > w.end {
		return false
	}
	if w.hasLunch && start < w.lunchEnd && end > w.lunchStart {
		return false
	}
	return true
}
