package session

import (
	"sync"
	"time"

	"ai-prompt-studio/internal/promptgen"
)

// Form is the per-chat selection the bot generates with.
type Form struct {
	ChatID      int64
	Style       promptgen.Style
	AspectRatio promptgen.AspectRatio
	Mode        promptgen.Mode
	Busy        bool

	LastActivity time.Time
}

// Request builds a generation request from the current selection.
func (f Form) Request(idea string) promptgen.Request {
	return promptgen.Request{
		Idea:        idea,
		Style:       f.Style,
		AspectRatio: f.AspectRatio,
		Mode:        f.Mode,
	}
}

type Options struct {
	// IdleTTL drops forms untouched for longer than this. Zero keeps them.
	IdleTTL time.Duration
	Now     func() time.Time
}

type Store struct {
	mu    sync.Mutex
	forms map[int64]*Form
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Store{
		forms: make(map[int64]*Form),
		ttl:   opts.IdleTTL,
		now:   now,
	}
}

func (s *Store) Get(chatID int64) Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.getOrCreateLocked(chatID)
}

// Update applies fn to the chat's form. Busy is owned by TryBegin and
// Release and is restored after fn runs.
func (s *Store) Update(chatID int64, fn func(*Form)) Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.getOrCreateLocked(chatID)
	busy := f.Busy
	if fn != nil {
		fn(f)
	}
	f.ChatID = chatID
	f.Busy = busy
	f.LastActivity = s.now()
	return *f
}

// TryBegin marks the chat busy. It returns false when a generation is
// already in flight for that chat.
func (s *Store) TryBegin(chatID int64) (Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.getOrCreateLocked(chatID)
	if f.Busy {
		return *f, false
	}
	f.Busy = true
	f.LastActivity = s.now()
	return *f, true
}

func (s *Store) Release(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.forms[chatID]; ok {
		f.Busy = false
		f.LastActivity = s.now()
	}
}

func (s *Store) Reset(chatID int64) Form {
	return s.Update(chatID, func(f *Form) {
		*f = defaultForm(chatID, s.now())
	})
}

// Prune removes idle forms that are not busy and returns how many were
// dropped.
func (s *Store) Prune() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, f := range s.forms {
		if f.Busy || f.LastActivity.After(cutoff) {
			continue
		}
		delete(s.forms, id)
		n++
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

func (s *Store) getOrCreateLocked(chatID int64) *Form {
	if f, ok := s.forms[chatID]; ok {
		return f
	}
	f := defaultForm(chatID, s.now())
	s.forms[chatID] = &f
	return s.forms[chatID]
}

func defaultForm(chatID int64, now time.Time) Form {
	return Form{
		ChatID:       chatID,
		Style:        promptgen.StyleNone,
		AspectRatio:  promptgen.AspectSquare,
		Mode:         promptgen.ModeTextToImage,
		LastActivity: now,
	}
}
