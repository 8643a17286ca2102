package closeout

import (
	"fmt"
	"strings"
	"time"
)

const (
	WireLayout    = "2006-01-02"
	DisplayLayout = "02/01/2006"
)

// ParseDate принимает дату в формате YYYY-MM-DD, dd/mm/yyyy или ISO-метку времени
// и возвращает полночь этого календарного дня в UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(WireLayout) && s[len(WireLayout)] == 'T' {
		s = s[:len(WireLayout)]
	}

	for _, layout := range []string{WireLayout, DisplayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ToDisplay переводит дату из формата API в формат dd/mm/yyyy.
// Некорректный ввод возвращается без изменений.
func ToDisplay(wire string) string {
	t, err := time.Parse(WireLayout, strings.TrimSpace(wire))
	if err != nil {
		return wire
	}
	return t.Format(DisplayLayout)
}

// ToWire переводит введённую пользователем дату в формат API.
// Для нераспознанного ввода возвращает пустую строку.
func ToWire(display string) string {
	t, err := ParseDate(display)
	if err != nil {
		return ""
	}
	return t.Format(WireLayout)
}

// EnumerateDays возвращает все календарные дни в диапазоне [from, to] включительно.
func EnumerateDays(from, to string) ([]string, error) {
	start, err := ParseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format(WireLayout), end.Format(WireLayout))
	}

	days := make([]string, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(WireLayout))
	}

	return days, nil
}
