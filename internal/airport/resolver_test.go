package airport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skytrip/pkg/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...logger.Field) {}
func (nopLogger) Info(string, ...logger.Field)  {}
func (nopLogger) Warn(string, ...logger.Field)  {}
func (nopLogger) Error(string, ...logger.Field) {}

type countingLookup struct {
	record *Record
	err    error
	calls  int
}

func (c *countingLookup) LookupCode(_ context.Context, _ string) (*Record, error) {
	c.calls++
	return c.record, c.err
}

func TestResolve_WellKnownSkipsLookup(t *testing.T) {
	lookup := &countingLookup{}
	resolver := NewResolver(lookup, nopLogger{})

	info, ok := resolver.Resolve(context.Background(), "jfk")
	require.True(t, ok)

	assert.Equal(t, "JFK", info.IATACode)
	assert.Equal(t, "New York", info.City)
	assert.Equal(t, "New York (JFK)", info.DisplayName)
	assert.Zero(t, lookup.calls)
}

func TestResolve_ShortInputSkipsLookup(t *testing.T) {
	lookup := &countingLookup{}
	resolver := NewResolver(lookup, nopLogger{})

	_, ok := resolver.Resolve(context.Background(), " J ")
	assert.False(t, ok)
	assert.Zero(t, lookup.calls)
}

func TestResolve_CachesExternalResult(t *testing.T) {
	lookup := &countingLookup{record: &Record{
		IATACode: "SFO",
		Name:     "San Francisco International Airport",
		City:     "San Francisco",
	}}
	resolver := NewResolver(lookup, nopLogger{})
	ctx := context.Background()

	info, ok := resolver.Resolve(ctx, "SFO")
	require.True(t, ok)
	assert.Equal(t, "San Francisco (SFO)", info.DisplayName)
	assert.Equal(t, 1, lookup.calls)

	// second resolve is a cache hit, case-insensitive
	again, ok := resolver.Resolve(ctx, "sfo")
	require.True(t, ok)
	assert.Equal(t, info, again)
	assert.Equal(t, 1, lookup.calls)
}

func TestResolve_LookupErrorIsNotCached(t *testing.T) {
	lookup := &countingLookup{err: errors.New("timeout")}
	resolver := NewResolver(lookup, nopLogger{})
	ctx := context.Background()

	_, ok := resolver.Resolve(ctx, "SFO")
	assert.False(t, ok)

	// a later attempt goes back to the directory
	lookup.err = nil
	lookup.record = &Record{IATACode: "SFO", City: "San Francisco"}

	_, ok = resolver.Resolve(ctx, "SFO")
	assert.True(t, ok)
	assert.Equal(t, 2, lookup.calls)
}

func TestResolve_UnknownCodeIsNotCached(t *testing.T) {
	lookup := &countingLookup{}
	resolver := NewResolver(lookup, nopLogger{})
	ctx := context.Background()

	_, ok := resolver.Resolve(ctx, "ZZZ")
	assert.False(t, ok)

	_, ok = resolver.Resolve(ctx, "ZZZ")
	assert.False(t, ok)
	assert.Equal(t, 2, lookup.calls)
}

func TestResolve_NilLookupStillServesWellKnown(t *testing.T) {
	resolver := NewResolver(nil, nopLogger{})
	ctx := context.Background()

	info, ok := resolver.Resolve(ctx, "LHR")
	require.True(t, ok)
	assert.Equal(t, "London (LHR)", info.DisplayName)

	_, ok = resolver.Resolve(ctx, "SFO")
	assert.False(t, ok)
}
