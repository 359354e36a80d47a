package jsonrpc

import "sync/atomic"

// MethodContext carries the per-connection value shared by every method
// call on the same connection, plus access to the connection itself.
type MethodContext[T any] interface {
	Get() *T
	Set(value *T)
	Peer() Conn[T]
}

func NewContext[T any](conn Conn[T], v *T) MethodContext[T] {
	c := &contextImpl[T]{conn: conn}
	c.v.Store(v)
	return c
}

type contextImpl[T any] struct {
	conn Conn[T]
	v    atomic.Pointer[T]
}

func (m *contextImpl[T]) Set(value *T) {
	m.v.Store(value)
}

func (m *contextImpl[T]) Get() *T {
	return m.v.Load()
}

func (m *contextImpl[T]) Peer() Conn[T] {
	return m.conn
}
