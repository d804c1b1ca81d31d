package session_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formplay/internal/session"
	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/testsupport"
)

func profileFactory() (*form.Form, error) {
	return form.New(testsupport.ProfileModel(), form.WithDefaults(testsupport.ProfileDefaults()))
}

func TestStore_CreateGetDelete(t *testing.T) {
	var closed []string
	store := session.NewStore(profileFactory, time.Minute, session.WithOnClose(func(id string) {
		closed = append(closed, id)
	}))

	sess, err := store.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	err = got.Do(func(f *form.Form) error {
		assert.Equal(t, form.LabelFixForm, f.SubmitLabel())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(sess.ID))
	assert.Equal(t, []string{sess.ID}, closed)
	assert.Equal(t, 0, store.Len())

	_, err = store.Get(sess.ID)
	assert.True(t, errors.Is(err, session.ErrNotFound))
	assert.True(t, errors.Is(store.Delete(sess.ID), session.ErrNotFound))
}

func TestStore_GetRejectsMalformedID(t *testing.T) {
	store := session.NewStore(profileFactory, time.Minute)
	_, err := store.Get("../etc/passwd")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	store := session.NewStore(profileFactory, time.Minute)
	a, err := store.Create()
	require.NoError(t, err)
	b, err := store.Create()
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.Do(func(f *form.Form) error { return f.Change("age", "290") }))

	require.NoError(t, b.Do(func(f *form.Form) error {
		value, _ := f.Value("age")
		assert.Equal(t, "29", value)
		return nil
	}))
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := func() time.Time { return now }
	store := session.NewStore(profileFactory, time.Minute, session.WithClock(clock))

	stale, err := store.Create()
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	fresh, err := store.Create()
	require.NoError(t, err)

	assert.Equal(t, 1, store.Sweep(now.Add(30*time.Second)))
	_, err = store.Get(stale.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)

	assert.Equal(t, 0, session.NewStore(profileFactory, 0).Sweep(now.Add(time.Hour)))
}

func TestStore_MaxSessions(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := func() time.Time { return now }
	var closed []string
	store := session.NewStore(profileFactory, time.Minute,
		session.WithClock(clock),
		session.WithMaxSessions(2),
		session.WithOnClose(func(id string) { closed = append(closed, id) }),
	)

	first, err := store.Create()
	require.NoError(t, err)
	now = now.Add(30 * time.Second)
	_, err = store.Create()
	require.NoError(t, err)

	_, err = store.Create()
	assert.ErrorIs(t, err, session.ErrCapacity)
	assert.Equal(t, 2, store.Len())

	// the first session is now idle past the ttl and makes room
	now = now.Add(45 * time.Second)
	_, err = store.Create()
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID}, closed)
	assert.Equal(t, 2, store.Len())
}

func TestStore_ZeroMaxSessionsIsUnbounded(t *testing.T) {
	store := session.NewStore(profileFactory, time.Minute, session.WithMaxSessions(0))
	for i := 0; i < 5; i++ {
		_, err := store.Create()
		require.NoError(t, err)
	}
	assert.Equal(t, 5, store.Len())
}

func TestSession_DoSerializesEvents(t *testing.T) {
	store := session.NewStore(profileFactory, time.Minute)
	sess, err := store.Create()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sess.Do(func(f *form.Form) error {
				if err := f.Focus("name"); err != nil {
					return err
				}
				return f.Change("name", "Reem")
			})
		}()
	}
	wg.Wait()

	require.NoError(t, sess.Do(func(f *form.Form) error {
		assert.Nil(t, f.FieldErrors("name"))
		return nil
	}))
}

func TestStore_FactoryError(t *testing.T) {
	store := session.NewStore(func() (*form.Form, error) { return nil, errors.New("boom") }, time.Minute)
	_, err := store.Create()
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}
