package model

import (
	"time"

	"github.com/google/uuid"
)

// Job is one program generation request with resolved parameters. The ID is
// used on setup sheets and in batch reports; the generated program text
// itself is not persisted here.
type Job struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Params    Parameters `json:"params"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewJob(name string, params Parameters) Job {
	return Job{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Params:    params,
		CreatedAt: time.Now(),
	}
}
