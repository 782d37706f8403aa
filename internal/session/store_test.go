package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	id := Identity{UserID: 1, ChatID: 1}

	_, ok := s.Get(id)
	assert.False(t, ok)
	assert.False(t, s.Active(id))

	s.SetState(id, StateName)
	sess, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateName, sess.State)
	assert.True(t, s.Active(id))
	assert.Equal(t, 1, s.Len())

	s.Clear(id)
	_, ok = s.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore()
	id := Identity{UserID: 7, ChatID: 7}
	s.Mutate(id, func(sess *Session) {
		sess.State = StateRegion
		sess.Fields.FullName = "Aliyev Vali"
	})

	got, ok := s.Get(id)
	require.True(t, ok)
	got.Fields.FullName = "tampered"
	got.State = StateFile

	again, _ := s.Get(id)
	assert.Equal(t, "Aliyev Vali", again.Fields.FullName)
	assert.Equal(t, StateRegion, again.State)
}

func TestStoreMutatePreservesFields(t *testing.T) {
	s := NewStore()
	id := Identity{UserID: 3, ChatID: 3}
	s.Mutate(id, func(sess *Session) {
		sess.State = StateDistrict
		sess.Fields.RegionID = "1"
	})
	s.Mutate(id, func(sess *Session) {
		sess.State = StateNeighborhood
		sess.Fields.DistrictID = "2"
	})

	sess, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateNeighborhood, sess.State)
	assert.Equal(t, "1", sess.Fields.RegionID)
	assert.Equal(t, "2", sess.Fields.DistrictID)
}

func TestStoreIdleIsNotActive(t *testing.T) {
	s := NewStore()
	id := Identity{UserID: 5, ChatID: 5}
	s.SetState(id, StateIdle)
	assert.False(t, s.Active(id))
	assert.Equal(t, 1, s.Len())
}

func TestStoreConcurrentIdentities(t *testing.T) {
	s := NewStore()
	const users = 32
	const rounds = 50

	var wg sync.WaitGroup
	for u := int64(0); u < users; u++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			id := Identity{UserID: uid, ChatID: uid}
			for i := 0; i < rounds; i++ {
				s.Mutate(id, func(sess *Session) {
					sess.State = StatePhone
					sess.Fields.Phone = "+998900000000"
				})
				s.Get(id)
			}
		}(u)
	}
	wg.Wait()

	assert.Equal(t, users, s.Len())
	for u := int64(0); u < users; u++ {
		sess, ok := s.Get(Identity{UserID: u, ChatID: u})
		require.True(t, ok)
		assert.Equal(t, StatePhone, sess.State)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "collecting_name", StateName.String())
	assert.Equal(t, "confirming", StateConfirm.String())
	assert.Equal(t, "collecting_submission_file", StateFile.String())
	assert.Equal(t, "unknown", State(200).String())
}
