package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextNumber(t *testing.T) {
	cases := []struct {
		name string
		last string
		want int64
	}{
		{name: "no orders", last: "", want: 2280001},
		{name: "sequence continues", last: "2280001", want: 2280002},
		{name: "foreign prefix restarts", last: "1000045", want: 2280001},
		{name: "garbage restarts", last: "228abc", want: 2280001},
		{name: "rolls past a digit boundary", last: "2289999", want: 2290000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextNumber(tc.last, DefaultNumberBase, DefaultNumberPrefix))
		})
	}
}

type fakeCounter struct {
	values map[string]int64
	down   bool
	raises int
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{values: map[string]int64{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	if f.down {
		return 0, errors.New("connection refused")
	}
	f.values[key]++
	return f.values[key], nil
}

func (f *fakeCounter) RaiseCounter(_ context.Context, key string, floor int64) (int64, error) {
	if f.down {
		return 0, errors.New("connection refused")
	}
	f.raises++
	if f.values[key] < floor {
		f.values[key] = floor
	}
	return f.values[key], nil
}

func (f *fakeCounter) CounterKey(name string) string {
	return "aw:counter:" + name
}

func TestAllocatorSeedsCounterFromDatabase(t *testing.T) {
	f := newFixture(t)
	f.insertOrderNumber(t, "2280041")

	counter := newFakeCounter()
	alloc := NewNumberAllocator(NewRepository(f.conn), counter, 0, "", nil)

	first, err := alloc.Next(context.Background(), nil)
	require.NoError(t, err)
	second, err := alloc.Next(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "2280042", first)
	assert.Equal(t, "2280043", second)
	assert.Equal(t, 1, counter.raises, "seed runs once per process")
}

func TestAllocatorRecoversLostCounter(t *testing.T) {
	f := newFixture(t)
	f.insertOrderNumber(t, "2280041")

	counter := newFakeCounter()
	alloc := NewNumberAllocator(NewRepository(f.conn), counter, 0, "", nil)
	_, err := alloc.Next(context.Background(), nil)
	require.NoError(t, err)

	counter.values = map[string]int64{}
	got, err := alloc.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "2280042", got)
}

func TestAllocatorFallsBackToDatabase(t *testing.T) {
	f := newFixture(t)
	f.insertOrderNumber(t, "2280009")
	f.insertOrderNumber(t, "2280010")

	counter := newFakeCounter()
	counter.down = true
	alloc := NewNumberAllocator(NewRepository(f.conn), counter, 0, "", nil)
	got, err := alloc.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "2280011", got)

	noRedis := NewNumberAllocator(NewRepository(f.conn), nil, 0, "", nil)
	got, err = noRedis.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "2280011", got)
	assert.NoError(t, noRedis.Resync(context.Background()))
}

func TestAllocatorResyncSkipsNumbersTakenElsewhere(t *testing.T) {
	f := newFixture(t)
	counter := newFakeCounter()
	alloc := NewNumberAllocator(NewRepository(f.conn), counter, 0, "", nil)

	got, err := alloc.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "2280001", got)

	// Another writer stored numbers the counter never handed out.
	f.insertOrderNumber(t, "2280001")
	f.insertOrderNumber(t, "2280002")
	f.insertOrderNumber(t, "2280003")

	require.NoError(t, alloc.Resync(context.Background()))
	got, err = alloc.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "2280004", got)
}
