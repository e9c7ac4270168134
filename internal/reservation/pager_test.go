package reservation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagerGuards(t *testing.T) {
	t.Parallel()

	p := NewPager(10)

	page, ok := p.Begin()
	require.True(t, ok)
	require.Equal(t, 1, page)

	// double-trigger while in flight is a no-op
	_, ok = p.Begin()
	require.False(t, ok)

	p.Finish(true)
	page, ok = p.Begin()
	require.True(t, ok)
	require.Equal(t, 2, page)
	p.Finish(false)

	// exhausted: no request, state unchanged
	_, ok = p.Begin()
	require.False(t, ok)
	require.False(t, p.HasMore())
}

func TestPagerAbortAllowsRetry(t *testing.T) {
	t.Parallel()

	p := NewPager(10)
	page, ok := p.Begin()
	require.True(t, ok)
	require.Equal(t, 1, page)

	p.Abort()
	page, ok = p.Begin()
	require.True(t, ok)
	require.Equal(t, 1, page, "failed page should be retried, not skipped")
}

func TestPagerReset(t *testing.T) {
	t.Parallel()

	p := NewPager(0)
	require.Equal(t, 20, p.PageSize())

	_, _ = p.Begin()
	p.Finish(false)
	p.Reset()

	page, ok := p.Begin()
	require.True(t, ok)
	require.Equal(t, 1, page)
}
