package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/llamabot/llamabot/internal/provider"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	calls  int
	models []provider.Model
	err    error
}

func (f *fakeLister) ListModels(ctx context.Context) ([]provider.Model, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.models, nil
}

func TestListCachesWithinWindow(t *testing.T) {
	fl := &fakeLister{models: []provider.Model{{ID: "llama-3.1-8b", Name: "llama-3.1-8b"}}}
	c := New(fl, 300*time.Second, nil)

	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }

	first := c.List(context.Background())
	second := c.List(context.Background())
	require.Equal(t, 1, fl.calls)
	require.Equal(t, first, second)

	now = now.Add(301 * time.Second)
	c.List(context.Background())
	require.Equal(t, 2, fl.calls)
}

func TestListFailureYieldsEmptyAndIsCached(t *testing.T) {
	fl := &fakeLister{err: errors.New("provider down")}
	c := New(fl, 300*time.Second, nil)

	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }

	require.Empty(t, c.List(context.Background()))
	require.Empty(t, c.List(context.Background()))
	require.Equal(t, 1, fl.calls)
}

func TestListMergesLocalDescriptions(t *testing.T) {
	fl := &fakeLister{models: []provider.Model{
		{ID: "llama-3.1-8b", Name: "llama-3.1-8b", Info: "from provider"},
		{ID: "mystery", Name: "mystery", Info: ""},
	}}
	c := New(fl, time.Minute, map[string]string{
		"llama-3.1-8b": "- Fast small model",
	})

	models := c.List(context.Background())
	require.Len(t, models, 2)
	require.Equal(t, "- Fast small model", models[0].Info)
	require.Equal(t, "", models[1].Info)
}

func TestNewDefaultsTTL(t *testing.T) {
	c := New(&fakeLister{}, 0, nil)
	require.Equal(t, 300*time.Second, c.ttl)
}
