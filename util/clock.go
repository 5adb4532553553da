// util/clock.go
package util

import "time"

// Clock abstracts the time source so the grant issuer and the expiry sweeper
// can be driven by a fake clock in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation used in production.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
