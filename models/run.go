package models

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// PipelineRun records one scrape->enrich->load execution.
type PipelineRun struct {
	StartedAt        time.Time
	FinishedAt       time.Time
	Status           RunStatus
	SitesFound       int
	RestaurantsFound int
	ParseWarnings    int
	ErrorsCount      int
}
