// Package keylock serializes work per key, typically a progress aggregate ID.
//
// Two implementations are provided: Memory for a single process and Redis for
// several processes sharing one database.
//
//	unlock, err := locker.Lock(ctx, "user_book:"+id)
//	if err != nil {
//		return err
//	}
//	defer unlock()
package keylock

import "context"

// Locker acquires an exclusive lock on key, blocking until it is available or
// ctx is done. The returned unlock func must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
