// Package steps defines the analysis steps, their categories and the order
// in which they may complete.
package steps

import (
	"fmt"
	"sort"
	"sync"
)

// Step categories reported in progress events.
const (
	CategoryIngestion = "ingestion"
	CategoryProfile   = "profile"
	CategorySkills    = "skills"
	CategoryAnalysis  = "analysis"
	CategoryLifecycle = "lifecycle"
)

// Step names.
const (
	IngestJob     = "ingest_job"
	IngestCV      = "ingest_cv"
	DetectProfile = "detect_profile"
	Extract       = "extract"
	Align         = "align"
	Score         = "score"
	Complete      = "complete"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	IngestJob: {
		Name:         IngestJob,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	IngestCV: {
		Name:         IngestCV,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	DetectProfile: {
		Name:         DetectProfile,
		Category:     CategoryProfile,
		Dependencies: []string{IngestJob, IngestCV},
	},
	Extract: {
		Name:         Extract,
		Category:     CategorySkills,
		Dependencies: []string{},
	},
	Align: {
		Name:         Align,
		Category:     CategorySkills,
		Dependencies: []string{Extract},
	},
	Score: {
		Name:         Score,
		Category:     CategoryAnalysis,
		Dependencies: []string{Align},
	},
	Complete: {
		Name:         Complete,
		Category:     CategoryLifecycle,
		Dependencies: []string{Score},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every dependency of stepName is in completed.
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// GetAvailableSteps returns the steps not yet completed whose dependencies are met, sorted by name.
func GetAvailableSteps(completed map[string]bool) []string {
	var available []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// Tracker records completed steps for one run. It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	completed map[string]bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{completed: make(map[string]bool)}
}

// Complete marks stepName done after checking its dependencies.
func (t *Tracker) Complete(stepName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ValidateDependencies(t.completed, stepName); err != nil {
		return err
	}
	t.completed[stepName] = true
	return nil
}

// Completed reports whether stepName is done.
func (t *Tracker) Completed(stepName string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed[stepName]
}
