// Package session provides the credential cache implementations behind
// ports.SessionStore: an in-memory store for tests, a JSON file store for
// single-machine use, and a Redis store for shared environments.
package session

import (
	"context"
	"sync"

	"github.com/campusrooms/booking-client/internal/core/ports"
)

// Memory is a process-local store. It is the test default and backs
// short-lived CLI invocations that log in and act in one run.
type Memory struct {
	mu   sync.Mutex
	sess ports.Session
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(context.Context) (ports.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess, nil
}

func (m *Memory) Save(_ context.Context, sess ports.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = ports.Session{}
	return nil
}
