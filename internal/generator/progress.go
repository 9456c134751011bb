package generator

import "github.com/scalatools/casegen/internal/report"

// ProgressReporter receives pipeline lifecycle events. Implementations must
// tolerate being called from a single goroutine only.
type ProgressReporter interface {
	OnDiscoveryStart()
	OnDiscoveryComplete(files int)
	OnFileProcessed(path string)
	OnComplete(rep *report.Report)
}

// NoOpProgressReporter ignores all events.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryStart()             {}
func (NoOpProgressReporter) OnDiscoveryComplete(files int) {}
func (NoOpProgressReporter) OnFileProcessed(path string)   {}
func (NoOpProgressReporter) OnComplete(rep *report.Report) {}
