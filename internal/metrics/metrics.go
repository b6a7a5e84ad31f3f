package metrics

import (
	"sync"
	"time"
)

// ProviderStats is the in-memory view of one upstream provider's calls.
type ProviderStats struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// Recorder keeps in-memory counters for tests and readiness checks and mirrors
// every observation to OpenTelemetry instruments when telemetry is enabled.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	mu            sync.Mutex
	providers     map[string]ProviderStats
	pollerCycles  int
	pollerErrors  int
	frames        int64
	streamClients int
	otel          *otelInstruments
}

// NewRecorder returns a Recorder without OpenTelemetry export.
func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]ProviderStats),
		otel:      otel,
	}
}

func (r *Recorder) update(fn func()) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	fn()
	r.mu.Unlock()
	return r.otel != nil
}

// RecordProviderAttempt counts one upstream call and keeps its latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	exported := r.update(func() {
		s := r.providers[provider]
		s.Calls++
		s.LastCallLatency = duration
		if err != nil {
			s.Errors++
		}
		r.providers[provider] = s
	})
	if exported {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit counts a 429 from provider and keeps the advertised Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	exported := r.update(func() {
		s := r.providers[provider]
		s.RateLimitHits++
		if retryAfter > 0 {
			s.LastRetryAfter = retryAfter
		}
		r.providers[provider] = s
	})
	if exported {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// Provider returns a copy of the stats recorded for provider.
func (r *Recorder) Provider(provider string) ProviderStats {
	if r == nil {
		return ProviderStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[provider]
}

// RecordHTTPRequest exports one served request; nothing is kept in memory.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle counts one match load cycle for league.
func (r *Recorder) RecordPollerCycle(league string, duration time.Duration, err error) {
	exported := r.update(func() {
		r.pollerCycles++
		if err != nil {
			r.pollerErrors++
		}
	})
	if exported {
		r.otel.recordPoller(league, duration, err)
	}
}

// PollerCycles returns the number of completed cycles and how many of them failed.
func (r *Recorder) PollerCycles() (cycles, failures int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pollerCycles, r.pollerErrors
}

// RecordFrame counts one background frame of the given width in columns.
func (r *Recorder) RecordFrame(columns int) {
	if r.update(func() { r.frames++ }) {
		r.otel.recordFrame(columns)
	}
}

// Frames returns the number of background frames rendered so far.
func (r *Recorder) Frames() int64 {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// RecordStreamClients adjusts the connected stream client count by delta.
func (r *Recorder) RecordStreamClients(delta int) {
	if r.update(func() { r.streamClients += delta }) {
		r.otel.recordStreamClients(delta)
	}
}

// StreamClients returns the number of currently connected stream clients.
func (r *Recorder) StreamClients() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.streamClients
}
