// Package storage persists participants, addresses and submissions.
package storage

import (
	"context"

	"github.com/bagrikeng/tanlovbot/internal/domain"
)

// Store is the persistence surface consumed by the conversation engine and
// the report generator. FindParticipant returns (nil, nil) when no record
// exists for the identity.
type Store interface {
	FindParticipant(ctx context.Context, telegramID int64) (*domain.Participant, error)
	CreateParticipant(ctx context.Context, p *domain.Participant) (int64, error)
	UpdateParticipant(ctx context.Context, p *domain.Participant) error

	GetAddress(ctx context.Context, id int64) (*domain.Address, error)
	CreateAddress(ctx context.Context, a *domain.Address) (int64, error)
	UpdateAddress(ctx context.Context, a *domain.Address) error

	CreateSubmission(ctx context.Context, s *domain.Submission) (int64, error)
	CountSubmissions(ctx context.Context, participantID int64) (int, error)

	ListParticipants(ctx context.Context) ([]domain.Participant, error)
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)
}

// TxStore adds a caller-controlled transaction boundary. Everything fn does
// through the passed Store commits or rolls back as one unit; returning an
// error rolls back.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}
