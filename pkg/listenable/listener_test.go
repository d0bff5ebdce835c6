package listenable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/listenkit/pkg/listenable"
)

func TestAddListener(t *testing.T) {
	t.Parallel()

	newStore := func(t *testing.T) *listenable.Listenable {
		policy, _ := newPolicy(t, abortAll())
		return listenable.MustNew(
			listenable.WithPolicy(policy),
			listenable.WithUniformValidator(accept),
			listenable.WithInitialState(listenable.State{"hello": "world", "foo": "bar"}),
		)
	}

	t.Run("omni listener replays current values in first-set order", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)
		require.NoError(t, store.SetProp("zeta", 1))
		require.NoError(t, store.SetProp("alpha", 2))
		require.NoError(t, store.SetProp("foo", "baz"))

		rec := &recorder{}
		store.Listen(rec.fn)

		assert.Equal(t, []call{
			{Value: "baz", Prop: "foo"},
			{Value: "world", Prop: "hello"},
			{Value: 1, Prop: "zeta"},
			{Value: 2, Prop: "alpha"},
		}, rec.calls)
	})

	t.Run("single target replays only when set", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)

		rec := &recorder{}
		store.Listen(rec.fn, "foo")
		store.Listen(rec.fn, "unset")
		assert.Equal(t, []call{{Value: "bar", Prop: "foo"}}, rec.calls)

		require.NoError(t, store.SetProp("unset", 1))
		assert.Equal(t, call{Value: 1, Prop: "unset"}, rec.calls[1])
	})

	t.Run("several targets", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)

		rec := &recorder{}
		store.Listen(rec.fn, "hello", "foo")
		require.NoError(t, store.Set(listenable.State{"hello": "you", "foo": "baz", "other": 1}))

		assert.Equal(t, []call{
			{Value: "world", Prop: "hello"},
			{Value: "bar", Prop: "foo"},
			{Value: "baz", Previous: "bar", Prop: "foo"},
			{Value: "you", Previous: "world", Prop: "hello"},
		}, rec.calls)
	})

	t.Run("listener added from a replay gets its own replay once", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)

		late := &recorder{}
		added := false
		store.Listen(func(_, _ any, prop string) {
			if prop == "foo" && !added {
				added = true
				store.Listen(late.fn, "foo")
			}
		}, "foo")

		// the replay above already registered late with the current value
		assert.Equal(t, []call{{Value: "bar", Prop: "foo"}}, late.calls)

		require.NoError(t, store.SetProp("foo", "next"))
		assert.Equal(t, call{Value: "next", Previous: "bar", Prop: "foo"}, late.calls[1])
		assert.Len(t, late.calls, 2)
	})
}

func TestRemoveListener(t *testing.T) {
	t.Parallel()

	newStore := func(t *testing.T, m listenable.Modes) *listenable.Listenable {
		policy, _ := newPolicy(t, m)
		return listenable.MustNew(listenable.WithPolicy(policy), listenable.WithUniformValidator(accept))
	}

	t.Run("omni", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		rec := &recorder{}
		ln := listenable.NewListener(rec.fn)
		store.AddListener(ln)
		require.NoError(t, store.SetProp("a", 1))
		require.NoError(t, store.RemoveListener(ln))
		require.NoError(t, store.SetProp("notListenedTo", 1))

		assert.Len(t, rec.calls, 1)
		assert.Equal(t, 0, store.ListenerCount(""))
	})

	t.Run("several targets", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		rec := &recorder{}
		ln := listenable.NewListener(rec.fn)
		store.AddListener(ln, "a", "b")
		require.NoError(t, store.RemoveListener(ln, "a", "b"))
		require.NoError(t, store.Set(listenable.State{"a": 1, "b": 2}))

		assert.Empty(t, rec.calls)
	})

	t.Run("unsubscribe removes exactly what was added", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		rec := &recorder{}
		ln := listenable.NewListener(rec.fn)
		unsubscribe := store.AddListener(ln, "a")
		store.AddListener(ln, "b")

		require.NoError(t, unsubscribe())
		require.NoError(t, store.Set(listenable.State{"a": 1, "b": 2}))

		assert.Equal(t, []call{{Value: 2, Prop: "b"}}, rec.calls)
	})

	t.Run("unsubscribing twice is a mismatch", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		_, unsubscribe := store.Listen(func(any, any, string) {}, "a")
		require.NoError(t, unsubscribe())

		err := unsubscribe()
		assert.True(t, listenable.IsKind(err, listenable.KindListenerRemoveMismatch))
	})

	t.Run("removing an unknown omni listener is a mismatch", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		err := store.RemoveListener(listenable.NewListener(nil))
		assert.ErrorIs(t, err, listenable.ErrListenerRemoveMismatch)
	})

	t.Run("property without listeners is a mismatch", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		err := store.RemoveListener(listenable.NewListener(nil), "nobody")
		assert.ErrorIs(t, err, listenable.ErrListenerRemoveMismatch)
	})

	t.Run("duplicate registration removes both and reports", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		rec := &recorder{}
		ln := listenable.NewListener(rec.fn)
		store.AddListener(ln, "a")
		store.AddListener(ln, "a")
		require.Equal(t, 2, store.ListenerCount("a"))

		err := store.RemoveListener(ln, "a")
		assert.True(t, listenable.IsKind(err, listenable.KindListenerRemoveMismatch))
		assert.Equal(t, 0, store.ListenerCount("a"), "the removal still takes effect")
	})

	t.Run("every target is processed even when one mismatches", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		ln := listenable.NewListener(nil)
		store.AddListener(ln, "b")

		err := store.RemoveListener(ln, "a", "b")
		assert.True(t, listenable.IsKind(err, listenable.KindListenerRemoveMismatch))
		assert.Equal(t, 0, store.ListenerCount("b"))
	})

	t.Run("mismatch is logged by default mode", func(t *testing.T) {
		t.Parallel()
		policy, buf := newPolicy(t, listenable.Modes{})
		store := listenable.MustNew(listenable.WithPolicy(policy))

		ln := listenable.NewListener(nil)
		require.NoError(t, store.RemoveListener(ln))
		assert.Contains(t, buf.String(), `"error_kind":"listener-remove-mismatch"`)
		assert.Contains(t, buf.String(), `"listener_id":"`+ln.ID()+`"`)
	})

	t.Run("removal during dispatch does not skip the current round", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, abortAll())

		second := &recorder{}
		secondLn := listenable.NewListener(second.fn)
		store.Listen(func(any, any, string) {
			_ = store.RemoveListener(secondLn, "a")
		}, "a")
		store.AddListener(secondLn, "a")

		require.NoError(t, store.SetProp("a", 1))
		require.Len(t, second.calls, 1)

		require.NoError(t, store.SetProp("a", 2))
		assert.Len(t, second.calls, 1)
	})
}

func TestNilListener(t *testing.T) {
	t.Parallel()

	policy, _ := newPolicy(t, abortAll())
	store := listenable.MustNew(
		listenable.WithPolicy(policy),
		listenable.WithUniformValidator(accept),
		listenable.WithInitialState(listenable.State{"a": 1}),
	)

	var unsubscribe listenable.Unsubscribe
	require.NotPanics(t, func() { unsubscribe = store.AddListener(nil) })
	require.NotPanics(t, func() { _ = store.AddListener(nil, "a") })
	assert.Equal(t, 0, store.ListenerCount(""))
	assert.Equal(t, 0, store.ListenerCount("a"))

	assert.NoError(t, unsubscribe())
	assert.NoError(t, store.RemoveListener(nil))
	assert.NoError(t, store.RemoveListener(nil, "a"))
	require.NoError(t, store.SetProp("a", 2))
}

func TestListenerID(t *testing.T) {
	t.Parallel()

	a := listenable.NewListener(nil)
	b := listenable.NewListener(nil)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
