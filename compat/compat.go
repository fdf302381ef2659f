// Package compat annotates job listings with candidate compatibility scores.
// The scoring algorithm itself is an external collaborator supplied as an
// opaque function; this package only applies it, sorts, and filters. The
// profile is an explicit argument on every call, so there is no singleton and
// no captured mutable state.
package compat

import (
	"sort"

	"github.com/hireloop/go-session"
)

// Job is the listing subset the scorer and the UI need.
type Job struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location"`
	RemoteFriendly bool     `json:"remote_friendly"`
}

// ScoredJob is a job annotated with its compatibility score for one profile.
type ScoredJob struct {
	Job   Job
	Score float64
}

// ScoreFunc computes the compatibility between a profile and a single job.
// Implementations must be side-effect free.
type ScoreFunc func(profile session.Profile, job Job) float64

// Annotate scores every job against the profile. The input slice is not
// mutated. A nil fn yields zero scores.
func Annotate(profile session.Profile, jobs []Job, fn ScoreFunc) []ScoredJob {
	scored := make([]ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		s := ScoredJob{Job: job}
		if fn != nil {
			s.Score = fn(profile, job)
		}
		scored = append(scored, s)
	}
	return scored
}

// SortByScore returns the jobs in descending score order. The sort is stable
// so equally scored jobs keep their listing order, and the input is untouched.
func SortByScore(jobs []ScoredJob) []ScoredJob {
	out := make([]ScoredJob, len(jobs))
	copy(out, jobs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// FilterByMinScore keeps jobs scoring at or above min.
func FilterByMinScore(jobs []ScoredJob, min float64) []ScoredJob {
	out := make([]ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		if job.Score >= min {
			out = append(out, job)
		}
	}
	return out
}
