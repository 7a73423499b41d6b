package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-prompt-studio/internal/promptgen"
)

func TestStore_Defaults(t *testing.T) {
	s := NewStore(Options{})

	f := s.Get(42)
	assert.Equal(t, int64(42), f.ChatID)
	assert.Equal(t, promptgen.StyleNone, f.Style)
	assert.Equal(t, promptgen.AspectSquare, f.AspectRatio)
	assert.Equal(t, promptgen.ModeTextToImage, f.Mode)
	assert.False(t, f.Busy)
}

func TestStore_UpdateKeepsBusy(t *testing.T) {
	s := NewStore(Options{})

	_, ok := s.TryBegin(1)
	require.True(t, ok)

	f := s.Update(1, func(f *Form) {
		f.Style = promptgen.StyleAnime
		f.Busy = false
	})
	assert.Equal(t, promptgen.StyleAnime, f.Style)
	assert.True(t, f.Busy)
}

func TestStore_BusyFlag(t *testing.T) {
	s := NewStore(Options{})

	_, ok := s.TryBegin(7)
	require.True(t, ok)

	_, ok = s.TryBegin(7)
	assert.False(t, ok, "second acquisition must fail while busy")

	_, ok = s.TryBegin(8)
	assert.True(t, ok, "other chats are independent")

	s.Release(7)
	_, ok = s.TryBegin(7)
	assert.True(t, ok)
}

func TestStore_TryBeginConcurrent(t *testing.T) {
	s := NewStore(Options{})

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.TryBegin(99); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(Options{})
	s.Update(3, func(f *Form) {
		f.Style = promptgen.StyleGhibli
		f.AspectRatio = promptgen.AspectWide
		f.Mode = promptgen.ModeImageReference
	})

	f := s.Reset(3)
	assert.Equal(t, promptgen.StyleNone, f.Style)
	assert.Equal(t, promptgen.AspectSquare, f.AspectRatio)
	assert.Equal(t, promptgen.ModeTextToImage, f.Mode)
}

func TestStore_Prune(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(Options{
		IdleTTL: time.Hour,
		Now:     func() time.Time { return now },
	})

	s.Get(1)
	s.Get(2)
	_, ok := s.TryBegin(2)
	require.True(t, ok)

	now = now.Add(2 * time.Hour)
	s.Get(3)

	assert.Equal(t, 1, s.Prune())
	assert.Equal(t, 2, s.Len())
}

func TestForm_Request(t *testing.T) {
	f := Form{Style: promptgen.StyleCyberpunk, AspectRatio: promptgen.AspectTall, Mode: promptgen.ModeImageReference}

	assert.Equal(t, promptgen.Request{
		Idea:        "霓虹雨夜",
		Style:       promptgen.StyleCyberpunk,
		AspectRatio: promptgen.AspectTall,
		Mode:        promptgen.ModeImageReference,
	}, f.Request("霓虹雨夜"))
}
