package chrono

import "time"

// Layout is the date-time format the site uses and the run timestamp is rendered in.
const Layout = "2006-01-02 15:04:05"

// API is the interface that anything depending on the system clock should use.
type API interface {
	// Now returns the current time in Location().
	Now() time.Time
	Location() *time.Location
}

// Shanghai returns a [*time.Location] for Asia/Shanghai. When the zone
// database is unavailable it falls back to a fixed UTC+8 zone, which is
// equivalent since the zone has no daylight saving time.
func Shanghai() *time.Location {
	location, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return location
}

// StandardImpl is the standard implementation of API using the standard library.
type StandardImpl struct {
	location *time.Location
}

func NewStandardImpl(location *time.Location) StandardImpl {
	return StandardImpl{location: location}
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl always returns the same instant, used in tests.
type FixedImpl struct {
	At time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.At
}

func (f FixedImpl) Location() *time.Location {
	return f.At.Location()
}
