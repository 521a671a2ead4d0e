package timezone

import (
	"sync"
	"time"

	// embute o banco IANA para imagens sem /usr/share/zoneinfo
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

var cache sync.Map // nome IANA -> *time.Location

func load(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if loc, ok := cache.Load(tz); ok {
		return loc.(*time.Location), true
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	cache.Store(tz, loc)
	return loc, true
}

func IsValid(tz string) bool {
	_, ok := load(tz)
	return ok
}

// Location devolve o fuso pedido ou, se inválido, o padrão da aplicação.
func Location(tz string) *time.Location {
	if loc, ok := load(tz); ok {
		return loc
	}
	loc, _ := load(DefaultTimezone)
	return loc
}

// StartOfDay zera o relógio mantendo a data e o fuso de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
