package bind

import (
	"errors"

	"github.com/dmitrymomot/listenkit/pkg/listenable"
)

// ErrAlreadyUnmounted is returned by Mount.Unmount after the first call.
var ErrAlreadyUnmounted = errors.New("bind: already unmounted")

// StateSetter receives partial state updates.
type StateSetter interface {
	SetState(patch map[string]any)
}

// Unmounter is implemented by components that need to release their own
// resources when unmounted.
type Unmounter interface {
	OnUnmount()
}

// StateInjector returns a listener that forwards each change to c as
// {prop: value}.
func StateInjector(c StateSetter) *listenable.Listener {
	return listenable.NewListener(func(value, _ any, prop string) {
		c.SetState(map[string]any{prop: value})
	})
}

// Mount is an active binding between a listenable and a component.
type Mount struct {
	component   StateSetter
	listener    *listenable.Listener
	unsubscribe listenable.Unsubscribe
	mounted     bool
}

// ListenWhileMounted subscribes c to the given properties of l, or to every
// property when none are given. The current values are pushed to c before
// ListenWhileMounted returns.
func ListenWhileMounted(l *listenable.Listenable, c StateSetter, targets ...string) *Mount {
	m := &Mount{component: c, listener: StateInjector(c), mounted: true}
	m.unsubscribe = l.AddListener(m.listener, targets...)
	return m
}

// Listener returns the listener registered for the component.
func (m *Mount) Listener() *listenable.Listener {
	return m.listener
}

// Mounted reports whether Unmount has not been called yet.
func (m *Mount) Mounted() bool {
	return m.mounted
}

// Unmount removes the subscription and then calls OnUnmount when the
// component implements Unmounter. The component hook runs even if the
// listenable reports a removal problem.
func (m *Mount) Unmount() error {
	if !m.mounted {
		return ErrAlreadyUnmounted
	}
	m.mounted = false

	err := m.unsubscribe()
	if u, ok := m.component.(Unmounter); ok {
		u.OnUnmount()
	}
	return err
}
