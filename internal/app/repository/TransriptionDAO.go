package repository

import (
	"context"

	"stt-frontend/internal/app/model"
)

// TranscriptionDAO stores the transcripts served by the dev backend.
type TranscriptionDAO interface {
	Close() error

	// List returns every transcript, newest first.
	List(ctx context.Context) ([]model.Transcript, error)

	// Create stores t, assigning an ID and creation time when missing.
	Create(ctx context.Context, t model.Transcript) (model.Transcript, error)

	// Delete removes the transcript with id. It returns an error wrapping
	// errors.ErrNotFound when there is none.
	Delete(ctx context.Context, id string) error
}
