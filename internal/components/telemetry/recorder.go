package telemetry

import (
	"fmt"
	"strings"
	"sync"
)

// Report is a single call recorded by Recorder.
type Report struct {
	Level  string
	Id     string
	Params []any
}

func (r Report) String() string {
	return fmt.Sprintf("%s %s %v", r.Level, r.Id, r.Params)
}

// Recorder is an API that keeps every report in memory, it is meant to be
// used in tests to assert what a component reported.
type Recorder struct {
	// DisableDebug makes DebugEnabled return false, debug reports are still recorded.
	DisableDebug bool

	mutex   sync.Mutex
	reports []Report
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level, id string, params []any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, Report{Level: level, Id: id, Params: params})
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.record("broken", id, params)
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.record("warning", id, params)
}

func (r *Recorder) ReportInfo(msg string, params ...any) {
	r.record("info", msg, params)
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.record("debug", msg, params)
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.record("count", id, []any{count})
}

func (r *Recorder) DebugEnabled() bool {
	return !r.DisableDebug
}

// Reports returns a copy of every report with the given level, all reports
// are returned if level is empty.
func (r *Recorder) Reports(level string) []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var out []Report
	for _, report := range r.reports {
		if level == "" || report.Level == level {
			out = append(out, report)
		}
	}
	return out
}

// Contains returns true if a report with the given level has an id containing substr.
func (r *Recorder) Contains(level, substr string) bool {
	for _, report := range r.Reports(level) {
		if strings.Contains(report.Id, substr) {
			return true
		}
	}
	return false
}
