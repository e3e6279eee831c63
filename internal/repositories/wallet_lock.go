package repositories

import (
	"context"
	"sort"
	"sync"
)

// walletLocks serializes work per wallet inside this process. Entries are
// reference counted so the map only holds wallets somebody is waiting on.
type walletLocks struct {
	mu    sync.Mutex
	locks map[uint]*walletLock
}

type walletLock struct {
	sem  chan struct{}
	refs int
}

func newWalletLocks() *walletLocks {
	return &walletLocks{locks: make(map[uint]*walletLock)}
}

func (l *walletLocks) ref(id uint) *walletLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	wl, ok := l.locks[id]
	if !ok {
		wl = &walletLock{sem: make(chan struct{}, 1)}
		l.locks[id] = wl
	}
	wl.refs++
	return wl
}

func (l *walletLocks) unref(id uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	wl := l.locks[id]
	wl.refs--
	if wl.refs == 0 {
		delete(l.locks, id)
	}
}

func (l *walletLocks) acquire(ctx context.Context, id uint) error {
	wl := l.ref(id)
	select {
	case wl.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.unref(id)
		return ctx.Err()
	}
}

func (l *walletLocks) release(id uint) {
	l.mu.Lock()
	wl := l.locks[id]
	l.mu.Unlock()
	<-wl.sem
	l.unref(id)
}

// acquireAll locks ids in ascending order and returns the matching unlock
// function. On failure nothing stays locked.
func (l *walletLocks) acquireAll(ctx context.Context, ids []uint) (func(), error) {
	held := make([]uint, 0, len(ids))
	unlock := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(held[i])
		}
	}
	for _, id := range ids {
		if err := l.acquire(ctx, id); err != nil {
			unlock()
			return nil, err
		}
		held = append(held, id)
	}
	return unlock, nil
}

// sortedUnique returns ids deduplicated in ascending order.
func sortedUnique(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
