package series

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCanonicalForm(t *testing.T) {
	k := NewKey("host", "h1", "process", "sadc")
	assert.Equal(t, "host=h1,process=sadc", k.String())

	v, ok := k.Get("process")
	require.True(t, ok)
	assert.Equal(t, "sadc", v)

	_, ok = k.Get("cpu")
	assert.False(t, ok)

	assert.NotEqual(t, k.String(), NewKey("host", "h1", "process", "bash").String())
}

func TestNewKeyOddArgsPanics(t *testing.T) {
	assert.Panics(t, func() { NewKey("host") })
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	r := NewRegistry(nil)
	key := NewKey("host", "h1")

	a := r.GetOrCreate("sysstat.mem.kb.free", key, KindGauge)
	b := r.GetOrCreate("sysstat.mem.kb.free", key, KindGauge)

	assert.Same(t, a, b)
	assert.Equal(t, 1, r.Len())

	c := r.GetOrCreate("sysstat.mem.kb.free", NewKey("host", "h2"), KindGauge)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2, r.Count("sysstat.mem.kb.free"))
}

func TestKindConflictPanics(t *testing.T) {
	r := NewRegistry(nil)
	key := NewKey("host", "h1", "process", "sadc")
	r.GetOrCreate("psacct.invocation.total", key, KindCounter)

	assert.Panics(t, func() {
		r.GetOrCreate("psacct.invocation.total", key, KindGauge)
	})
}

func TestCounterSemantics(t *testing.T) {
	r := NewRegistry(nil)
	c := r.GetOrCreate("psacct.invocation.total", NewKey("host", "h1"), KindCounter)

	c.Add(1)
	c.Add(3)
	c.Add(-10)
	assert.Equal(t, 4.0, c.Value())

	assert.Panics(t, func() { c.Set(0) })
}

func TestGaugeSemantics(t *testing.T) {
	r := NewRegistry(nil)
	g := r.GetOrCreate("psacct.invocation.count", NewKey("host", "h1"), KindGauge)

	g.Set(7)
	g.Set(0)
	assert.Equal(t, 0.0, g.Value())
	g.Add(-2.5)
	assert.Equal(t, -2.5, g.Value())
}

func TestConcurrentCreateSameKey(t *testing.T) {
	r := NewRegistry(nil)
	key := NewKey("host", "h1", "process", "cron")

	const workers = 32
	handles := make([]*Series, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := r.GetOrCreate("psacct.invocation.total", key, KindCounter)
			s.Add(1)
			handles[i] = s
		}()
	}
	wg.Wait()

	require.Equal(t, 1, r.Len())
	for _, h := range handles {
		assert.Same(t, handles[0], h)
	}
	assert.Equal(t, float64(workers), handles[0].Value())
}

func TestOnCreateSubscriber(t *testing.T) {
	r := NewRegistry(nil)
	r.GetOrCreate("before", NewKey("host", "h1"), KindGauge)

	var seen []string
	r.OnCreate(func(s *Series) { seen = append(seen, s.Name()) })

	r.GetOrCreate("after", NewKey("host", "h1"), KindGauge)
	r.GetOrCreate("after", NewKey("host", "h1"), KindGauge)

	assert.Equal(t, []string{"after"}, seen)
}

func TestLookupAndEachOrder(t *testing.T) {
	r := NewRegistry(nil)
	r.GetOrCreate("b", NewKey("host", "h1"), KindGauge)
	r.GetOrCreate("a", NewKey("host", "h1"), KindGauge)

	_, ok := r.Lookup("a", NewKey("host", "h1"))
	assert.True(t, ok)
	_, ok = r.Lookup("a", NewKey("host", "h2"))
	assert.False(t, ok)

	var names []string
	r.Each(func(s *Series) { names = append(names, s.Name()) })
	assert.Equal(t, []string{"b", "a"}, names)
}
