package domain

import (
	"strconv"
	"strings"
)

var seasonLabels = map[int]string{
	1: "Spring",
	2: "Summer",
	3: "Fall",
	4: "Winter",
}

var weatherLabels = map[int]string{
	1: "Clear",
	2: "Mist",
	3: "Light Snow/Rain",
	4: "Heavy Rain",
}

var monthLabels = map[int]string{
	1: "Jan", 2: "Feb", 3: "Mar", 4: "Apr", 5: "May", 6: "Jun",
	7: "Jul", 8: "Aug", 9: "Sep", 10: "Oct", 11: "Nov", 12: "Dec",
}

var yearLabels = map[int]string{
	0: "2011",
	1: "2012",
}

// Alternative spellings found in cleaned exports of the dataset
var (
	seasonAliases = map[string]int{
		"autumn": 3,
	}
	weatherAliases = map[string]int{
		"clear/partly cloudy": 1,
		"misty/cloudy":        2,
		"mist/cloudy":         2,
		"cloudy":              2,
		"light rain":          3,
		"light snow":          3,
		"light rain/snow":     3,
		"severe weather":      4,
		"heavy rain/snow":     4,
	}
)

// SeasonLabel returns the display name of a season code
func SeasonLabel(code int) string {
	return label(seasonLabels, code)
}

// WeatherLabel returns the display name of a weather code
func WeatherLabel(code int) string {
	return label(weatherLabels, code)
}

// MonthLabel returns the short month name of a month code
func MonthLabel(code int) string {
	return label(monthLabels, code)
}

// YearLabel returns the calendar year of a year indicator.
// Indicators outside the documented 0/1 coding render as themselves.
func YearLabel(code int) string {
	return label(yearLabels, code)
}

// YearCode resolves a calendar year label ("2011", "2012") to its indicator
func YearCode(name string) (int, bool) {
	return code(yearLabels, nil, name)
}

// SeasonCode resolves a season name to its code
func SeasonCode(name string) (int, bool) {
	return code(seasonLabels, seasonAliases, name)
}

// WeatherCode resolves a weather description to its code
func WeatherCode(name string) (int, bool) {
	return code(weatherLabels, weatherAliases, name)
}

// MonthCode resolves a short or full month name to its number
func MonthCode(name string) (int, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) < 3 {
		return 0, false
	}
	for c, l := range monthLabels {
		if strings.HasPrefix(n, strings.ToLower(l)) {
			return c, true
		}
	}
	return 0, false
}

func label(labels map[int]string, code int) string {
	if l, ok := labels[code]; ok {
		return l
	}
	return strconv.Itoa(code)
}

func code(labels map[int]string, aliases map[string]int, name string) (int, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for c, l := range labels {
		if strings.ToLower(l) == n {
			return c, true
		}
	}
	c, ok := aliases[n]
	return c, ok
}
