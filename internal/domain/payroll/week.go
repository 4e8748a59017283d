package payroll

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Weekday indexes the six working days of a site week. Sunday is never
// represented.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

const DaysPerWeek = 6

var weekdayNames = [DaysPerWeek]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func (d Weekday) String() string {
	if d < Monday || d > Saturday {
		return ""
	}
	return weekdayNames[d]
}

// ParseWeekday matches a weekday key case-insensitively.
func ParseWeekday(name string) (Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), true
		}
	}
	return 0, false
}

// Week holds one value per working day. It always serialises to exactly the
// six keys monday..saturday; decoding drops unknown keys and leaves missing
// days at the zero value.
type Week[T any] [DaysPerWeek]T

// NormalizeWeek builds a Week from free-form weekday keys.
func NormalizeWeek[T any](in map[string]T) Week[T] {
	var w Week[T]
	for key, v := range in {
		if d, ok := ParseWeekday(key); ok {
			w[d] = v
		}
	}
	return w
}

func (w Week[T]) Get(d Weekday) T {
	return w[d]
}

func (w *Week[T]) Set(d Weekday, v T) {
	w[d] = v
}

// Map returns the keyed form used on the wire.
func (w Week[T]) Map() map[string]T {
	out := make(map[string]T, DaysPerWeek)
	for i, name := range weekdayNames {
		out[name] = w[i]
	}
	return out
}

func (w Week[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Map())
}

func (w *Week[T]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Week[T]
	for d, value := range NormalizeWeek(raw) {
		if value == nil {
			continue
		}
		if err := json.Unmarshal(value, &out[d]); err != nil {
			return err
		}
	}
	*w = out
	return nil
}

// DaysPresent counts attended days.
func DaysPresent(w Week[bool]) int {
	n := 0
	for _, present := range w {
		if present {
			n++
		}
	}
	return n
}

func TotalHours(w Week[decimal.Decimal]) decimal.Decimal {
	total := decimal.Zero
	for _, h := range w {
		total = total.Add(h)
	}
	return total
}

func TotalMinutes(w Week[int]) int {
	total := 0
	for _, m := range w {
		total += m
	}
	return total
}
