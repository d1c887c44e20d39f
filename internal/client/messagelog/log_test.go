package messagelog

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func TestLog_AppendKeepsOrder(t *testing.T) {
	l := New()
	kinds := []Kind{KindSystem, KindReceived, KindSent, KindError}

	for i := 0; i < 20; i++ {
		l.Append(fmt.Sprintf("msg %d", i), kinds[i%len(kinds)])
	}

	entries := l.Entries()
	require.Len(t, entries, 20)
	assert.Equal(t, 20, l.Len())
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("msg %d", i), e.Text)
		assert.Equal(t, kinds[i%len(kinds)], e.Kind)
	}
}

func TestLog_EmptyLog(t *testing.T) {
	l := New()
	assert.Empty(t, l.Entries())
	assert.NotNil(t, l.Entries())
	assert.Zero(t, l.Len())
}

func TestLog_AppendStampsEntry(t *testing.T) {
	start := time.Date(2024, 5, 1, 13, 4, 59, 0, time.UTC)
	l := New(WithClock(fixedClock(start)))

	first := l.Append("hello", KindReceived)
	second := l.Append("world", KindSent)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "13:05:00", first.Timestamp)
	assert.Equal(t, "13:05:01", second.Timestamp)
	assert.True(t, first.At.Before(second.At))
}

func TestLog_EntriesIsACopy(t *testing.T) {
	l := New()
	l.Append("original", KindSystem)

	entries := l.Entries()
	entries[0].Text = "changed"

	assert.Equal(t, "original", l.Entries()[0].Text)
}

func TestLog_AllIsRestartable(t *testing.T) {
	l := New()
	l.Append("a", KindSent)
	l.Append("b", KindReceived)

	collect := func() []string {
		var out []string
		for _, e := range l.All() {
			out = append(out, e.Text)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b"}, collect())
	assert.Equal(t, []string{"a", "b"}, collect())

	l.Append("c", KindError)
	assert.Equal(t, []string{"a", "b", "c"}, collect())
}

func TestLog_AllStopsEarly(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		l.Append("x", KindSystem)
	}

	var seen []int
	for i := range l.All() {
		seen = append(seen, i)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestLog_ConcurrentAppend(t *testing.T) {
	l := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Append("m", KindReceived)
			}
		}()
	}
	wg.Wait()

	entries := l.Entries()
	require.Len(t, entries, 400)

	ids := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		ids[e.ID] = struct{}{}
		if i > 0 {
			assert.False(t, e.At.Before(entries[i-1].At), "entry %d out of time order", i)
		}
	}
	assert.Len(t, ids, 400)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "system", KindSystem.String())
	assert.Equal(t, "received", KindReceived.String())
	assert.Equal(t, "sent", KindSent.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
