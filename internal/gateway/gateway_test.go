package gateway

import "testing"

func TestCallerLimiterAllowsWithinBurst(t *testing.T) {
	limiter := NewCallerLimiter(1, 3)
	for i := 0; i < 3; i++ {
		if !limiter.Allow("caller-a") {
			t.Fatalf("expected request %d within burst to be allowed", i)
		}
	}
}

func TestCallerLimiterRejectsBeyondBurst(t *testing.T) {
	limiter := NewCallerLimiter(1, 2)
	limiter.Allow("caller-b")
	limiter.Allow("caller-b")
	if limiter.Allow("caller-b") {
		t.Fatal("expected the third immediate request to exceed the burst")
	}
}

func TestCallerLimiterTracksCallersIndependently(t *testing.T) {
	limiter := NewCallerLimiter(1, 1)
	if !limiter.Allow("caller-c") {
		t.Fatal("expected first request for caller-c to be allowed")
	}
	if !limiter.Allow("caller-d") {
		t.Fatal("expected a different caller's bucket to be independent")
	}
}

func TestDroppedRequestHeaders(t *testing.T) {
	for _, h := range []string{"host", "content-length", "transfer-encoding"} {
		if !droppedRequestHeaders[h] {
			t.Errorf("expected %q to be in the dropped header set", h)
		}
	}
	if droppedRequestHeaders["authorization"] {
		t.Error("authorization header should be forwarded, not dropped")
	}
}
