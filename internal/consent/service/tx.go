package service

import (
	"context"
	"sync"
	"time"

	dErrors "guardian/pkg/domain-errors"
)

// StoreTx provides a transactional boundary for consent store mutations.
// Grant and revoke touch both the consent record and the child profile; both
// writes must land or neither, so a crash mid-update cannot desynchronize
// record and profile state. Implementations wrap a database transaction or,
// in-memory, a coarse lock.
//
// The key selects the lock shard for in-memory implementations; pass the
// child user id so operations on different children do not serialize.
type StoreTx interface {
	RunInTx(ctx context.Context, key string, fn func(store Store) error) error
}

// numTxShards spreads in-memory transaction locks across shards keyed by a
// hash of the child user id, reducing contention under concurrent load.
const numTxShards = 128

// defaultTxTimeout bounds how long a consent transaction may run.
const defaultTxTimeout = 5 * time.Second

// ShardedMemoryTx is the in-memory StoreTx: a sharded mutex around the plain
// store. Pairs with the memory store in dev and unit tests.
type ShardedMemoryTx struct {
	shards  [numTxShards]sync.Mutex
	store   Store
	timeout time.Duration
}

func NewShardedMemoryTx(store Store) *ShardedMemoryTx {
	return &ShardedMemoryTx{store: store}
}

func (t *ShardedMemoryTx) RunInTx(ctx context.Context, key string, fn func(store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := &t.shards[hashTxKey(key)%numTxShards]
	shard.Lock()
	defer shard.Unlock()

	// Check again after acquiring the lock.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(t.store)
}

// hashTxKey uses FNV-1a for shard distribution.
func hashTxKey(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
