package locker

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrLockTimeout возвращается, если блокировку не удалось взять за отведённое время
	ErrLockTimeout = errors.New("locker: lock wait timeout")

	// ErrLockLost возвращается при освобождении блокировки, которая уже истекла или принадлежит другому владельцу
	ErrLockLost = errors.New("locker: lock is not held")
)

// UnlockFunc освобождает взятую блокировку
type UnlockFunc func(ctx context.Context) error

// LocalLocker блокировки по ключу внутри одного процесса
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

// NewLocal создает внутрипроцессный локер
func NewLocal() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*entry)}
}

// Lock ждёт освобождения ключа или отмены контекста
func (l *LocalLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, errors.Join(ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
		return nil
	}, nil
}

func (l *LocalLocker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
