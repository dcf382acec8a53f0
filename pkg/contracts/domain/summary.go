package domain

// User type labels for the casual/registered split
const (
	UserTypeCasual     = "Casual"
	UserTypeRegistered = "Registered"
)

// SummaryKind names one of the dashboard summaries
type SummaryKind string

const (
	SummaryMetrics            SummaryKind = "metrics"
	SummaryDaily              SummaryKind = "daily"
	SummaryUserTypes          SummaryKind = "user-types"
	SummaryYears              SummaryKind = "years"
	SummarySeasons            SummaryKind = "seasons"
	SummaryMonths             SummaryKind = "months"
	SummaryWeather            SummaryKind = "weather"
	SummaryBuckets            SummaryKind = "buckets"
	SummaryTemperatureBuckets SummaryKind = "temperature-buckets"
)

// SummaryKinds lists every summary in display order
var SummaryKinds = []SummaryKind{
	SummaryMetrics,
	SummaryDaily,
	SummaryUserTypes,
	SummaryYears,
	SummarySeasons,
	SummaryMonths,
	SummaryWeather,
	SummaryBuckets,
	SummaryTemperatureBuckets,
}

// DailyTotal is the summed total for one day
type DailyTotal struct {
	Day   Date  `json:"day"`
	Total int64 `json:"total"`
}

// UserTypeTotal is the summed count for one user type
type UserTypeTotal struct {
	Type  string `json:"type"`
	Total int64  `json:"total"`
}

// GroupTotal is the summed total for one categorical code
type GroupTotal struct {
	Key   int    `json:"key"`
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// BucketTotal is the summed total for a temperature/humidity bucket pair.
// Humidity is empty for temperature-only rows.
type BucketTotal struct {
	Temperature string  `json:"temperature"`
	Humidity    string  `json:"humidity,omitempty"`
	Total       int64   `json:"total"`
	Days        int     `json:"days"`
	Mean        float64 `json:"mean"`
}

// HeadlineMetrics are the top-line figures shown above the charts
type HeadlineMetrics struct {
	Casual     int64 `json:"casual"`
	Registered int64 `json:"registered"`
	Total      int64 `json:"total"`
	Days       int   `json:"days"`
}

// Dashboard is the full result of one pipeline run
type Dashboard struct {
	Range              DateRange       `json:"range"`
	Metrics            HeadlineMetrics `json:"metrics"`
	Daily              []DailyTotal    `json:"daily"`
	UserTypes          []UserTypeTotal `json:"user_types"`
	Years              []GroupTotal    `json:"years"`
	Seasons            []GroupTotal    `json:"seasons"`
	Months             []GroupTotal    `json:"months"`
	Weather            []GroupTotal    `json:"weather"`
	TemperatureBuckets []BucketTotal   `json:"temperature_buckets"`
	Buckets            []BucketTotal   `json:"buckets"`
	Records            []BinnedRecord  `json:"records"`
}

// Summary returns the part of the dashboard named by kind.
// ok is false for an unknown kind.
func (d *Dashboard) Summary(kind SummaryKind) (data any, ok bool) {
	switch kind {
	case SummaryMetrics:
		return d.Metrics, true
	case SummaryDaily:
		return d.Daily, true
	case SummaryUserTypes:
		return d.UserTypes, true
	case SummaryYears:
		return d.Years, true
	case SummarySeasons:
		return d.Seasons, true
	case SummaryMonths:
		return d.Months, true
	case SummaryWeather:
		return d.Weather, true
	case SummaryBuckets:
		return d.Buckets, true
	case SummaryTemperatureBuckets:
		return d.TemperatureBuckets, true
	}
	return nil, false
}

// DatasetInfo describes the loaded base table
type DatasetInfo struct {
	Source string    `json:"source"`
	Rows   int       `json:"rows"`
	Bounds DateRange `json:"bounds"`
}
