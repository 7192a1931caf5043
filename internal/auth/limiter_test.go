package auth

import (
	"testing"
	"time"
)

func TestLoginLimiterBurstThenDeny(t *testing.T) {
	l := NewLoginLimiter(LoginLimiterConfig{RPS: 0.001, Burst: 3})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4|admin@example.com") {
			t.Fatalf("attempt %d denied within burst", i+1)
		}
	}
	if l.Allow("1.2.3.4|admin@example.com") {
		t.Fatal("attempt beyond burst allowed")
	}
}

func TestLoginLimiterKeysAreIndependent(t *testing.T) {
	l := NewLoginLimiter(LoginLimiterConfig{RPS: 0.001, Burst: 1})
	defer l.Stop()

	if !l.Allow("key-a") {
		t.Fatal("first attempt for key-a denied")
	}
	if l.Allow("key-a") {
		t.Fatal("second attempt for key-a allowed")
	}
	if !l.Allow("key-b") {
		t.Fatal("key-b throttled by key-a's attempts")
	}
}

func TestLoginLimiterRefills(t *testing.T) {
	l := NewLoginLimiter(LoginLimiterConfig{RPS: 50, Burst: 1})
	defer l.Stop()

	if !l.Allow("k") {
		t.Fatal("first attempt denied")
	}
	if l.Allow("k") {
		t.Fatal("immediate second attempt allowed")
	}
	time.Sleep(40 * time.Millisecond)
	if !l.Allow("k") {
		t.Fatal("attempt after refill interval denied")
	}
}

func TestLoginLimiterStopIsIdempotent(t *testing.T) {
	l := NewLoginLimiter(DefaultLoginLimiterConfig)
	l.Stop()
	l.Stop()
}
