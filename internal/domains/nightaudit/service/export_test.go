package service

import "time"

// Synchronous fixes the clock of svc and runs its side effects inline.
func Synchronous(svc NightAudit, now time.Time) NightAudit {
	impl := svc.(*serviceImpl)
	impl.now = func() time.Time { return now }
	impl.background = func(fn func()) { fn() }

	return impl
}

// Deferred fixes the clock of svc and queues its side effects until flush is called.
func Deferred(svc NightAudit, now time.Time) (NightAudit, func()) {
	impl := svc.(*serviceImpl)
	impl.now = func() time.Time { return now }

	var queued []func()
	impl.background = func(fn func()) { queued = append(queued, fn) }

	flush := func() {
		for _, fn := range queued {
			fn()
		}

		queued = nil
	}

	return impl, flush
}
