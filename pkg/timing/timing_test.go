package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerMetricsOnlyPopulatesRecordedPhases(t *testing.T) {
	timer := NewTimer()
	timer.StartTCP()
	time.Sleep(time.Millisecond)
	timer.EndTCP()

	m := timer.Metrics()
	assert.Greater(t, m.TCPConnect, time.Duration(0))
	assert.Equal(t, time.Duration(0), m.DNSLookup)
	assert.Equal(t, time.Duration(0), m.TLSHandshake)
	assert.Equal(t, time.Duration(0), m.TTFB)
	assert.Greater(t, m.TotalTime, time.Duration(0))
}

func TestTimerMetricsAllPhases(t *testing.T) {
	timer := NewTimer()
	timer.StartDNS()
	timer.EndDNS()
	timer.StartTCP()
	timer.EndTCP()
	timer.StartTLS()
	timer.EndTLS()
	timer.StartTTFB()
	timer.EndTTFB()

	m := timer.Metrics()
	assert.GreaterOrEqual(t, m.DNSLookup, time.Duration(0))
	assert.GreaterOrEqual(t, m.TCPConnect, time.Duration(0))
	assert.GreaterOrEqual(t, m.TLSHandshake, time.Duration(0))
	assert.GreaterOrEqual(t, m.TTFB, time.Duration(0))
}

func TestMetricsConnectionTimeSumsThreeLegs(t *testing.T) {
	m := Metrics{DNSLookup: time.Millisecond, TCPConnect: 2 * time.Millisecond, TLSHandshake: 3 * time.Millisecond}
	assert.Equal(t, 6*time.Millisecond, m.ConnectionTime())
}

func TestMetricsStringContainsAllFields(t *testing.T) {
	m := Metrics{DNSLookup: time.Millisecond}
	s := m.String()
	assert.Contains(t, s, "DNSLookup")
	assert.Contains(t, s, "TCPConnect")
	assert.Contains(t, s, "TLSHandshake")
	assert.Contains(t, s, "TTFB")
	assert.Contains(t, s, "TotalTime")
}
