package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagrikeng/tanlovbot/internal/domain"
)

func TestWithTxCommit(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.WithTx(ctx, func(s Store) error {
		addrID, err := s.CreateAddress(ctx, &domain.Address{RegionID: 1, DistrictID: 2, Neighborhood: "Bog'bon"})
		if err != nil {
			return err
		}
		pID, err := s.CreateParticipant(ctx, &domain.Participant{TelegramID: 10, FullName: "Aliyev Vali", AddressID: addrID})
		if err != nil {
			return err
		}
		_, err = s.CreateSubmission(ctx, &domain.Submission{ParticipantID: pID, Category: domain.CategoryEssay, URL: "https://t.me/c/1/2"})
		return err
	})
	require.NoError(t, err)

	p, err := m.FindParticipant(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Aliyev Vali", p.FullName)

	n, err := m.CountSubmissions(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWithTxRollback(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("relay down")

	err := m.WithTx(ctx, func(s Store) error {
		if _, err := s.CreateAddress(ctx, &domain.Address{RegionID: 1, DistrictID: 1}); err != nil {
			return err
		}
		if _, err := s.CreateParticipant(ctx, &domain.Participant{TelegramID: 20}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := m.FindParticipant(ctx, 20)
	require.NoError(t, err)
	assert.Nil(t, p, "rollback must discard the participant")

	participants, err := m.ListParticipants(ctx)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestRollbackRestoresIDSequence(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.WithTx(ctx, func(s Store) error {
		_, _ = s.CreateParticipant(ctx, &domain.Participant{TelegramID: 1})
		return errors.New("abort")
	})

	id, err := m.CreateParticipant(ctx, &domain.Participant{TelegramID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "rolled back ids are reused")
}

func TestUpdateParticipantKeepsIdentityAndAddress(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	addrID, err := m.CreateAddress(ctx, &domain.Address{RegionID: 1, DistrictID: 1, Neighborhood: "Eski"})
	require.NoError(t, err)
	pID, err := m.CreateParticipant(ctx, &domain.Participant{TelegramID: 30, FullName: "Old Name", AddressID: addrID})
	require.NoError(t, err)

	err = m.UpdateParticipant(ctx, &domain.Participant{ID: pID, FullName: "New Name", Workplace: "Maktab"})
	require.NoError(t, err)

	p, err := m.FindParticipant(ctx, 30)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "New Name", p.FullName)
	assert.Equal(t, "Maktab", p.Workplace)
	assert.Equal(t, addrID, p.AddressID, "address link is not part of the update")
	assert.Equal(t, int64(30), p.TelegramID)
}

func TestUpdateAddressInPlace(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.CreateAddress(ctx, &domain.Address{RegionID: 1, DistrictID: 1, Neighborhood: "Eski"})
	require.NoError(t, err)

	err = m.UpdateAddress(ctx, &domain.Address{ID: id, RegionID: 2, DistrictID: 3, Neighborhood: "Yangi"})
	require.NoError(t, err)

	a, err := m.GetAddress(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, int64(2), a.RegionID)
	assert.Equal(t, "Yangi", a.Neighborhood)
}

func TestGetAddressAbsent(t *testing.T) {
	m := NewMemory()
	a, err := m.GetAddress(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, a)
}
