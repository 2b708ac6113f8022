package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rgehrsitz/fidash/internal/calculation"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/storage"
)

// DefaultDebounce is the quiet period before a change is pushed
const DefaultDebounce = 600 * time.Millisecond

// flushTimeout bounds the final save made by Stop
const flushTimeout = 10 * time.Second

// Remote is a per-user document store. Load returns an error wrapping
// storage.ErrNotFound when the user has no document yet.
type Remote interface {
	Load(ctx context.Context, userID string) (*domain.Portfolio, error)
	Save(ctx context.Context, userID string, p *domain.Portfolio) error
}

// Syncer mirrors a Store to a Remote: it hydrates the store once, then
// pushes edits after a quiet period, skipping documents identical to the
// last one saved.
type Syncer struct {
	store    *Store
	remote   Remote
	userID   string
	debounce time.Duration
	log      Logger

	mu        sync.Mutex
	lastSaved []byte

	changes     chan domain.Portfolio
	unsubscribe func()
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewSyncer creates a syncer. A zero debounce selects DefaultDebounce.
func NewSyncer(store *Store, remote Remote, userID string, debounce time.Duration) *Syncer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Syncer{
		store:    store,
		remote:   remote,
		userID:   userID,
		debounce: debounce,
		log:      calculation.NopLogger{},
		changes:  make(chan domain.Portfolio, 1),
	}
}

// SetLogger sets the logger. Nil installs a no-op logger.
func (s *Syncer) SetLogger(l Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.log = l
}

// Hydrate reconciles the store with the remote copy. When the remote has a
// document it replaces the local one and pulled is true; otherwise the local
// document is pushed as the initial remote copy.
func (s *Syncer) Hydrate(ctx context.Context) (pulled bool, err error) {
	remote, err := s.remote.Load(ctx, s.userID)
	switch {
	case err == nil:
		doc := remote.Clone()
		s.markSaved(&doc)
		s.store.Replace(doc)
		s.log.Infof("hydrated portfolio from remote for user %s", s.userID)
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		local := s.store.Portfolio()
		if err := s.push(ctx, &local); err != nil {
			return false, fmt.Errorf("failed to seed remote copy: %w", err)
		}
		s.log.Infof("seeded remote copy for user %s", s.userID)
		return false, nil
	default:
		return false, fmt.Errorf("failed to hydrate from remote: %w", err)
	}
}

// Pull replaces the local document with the remote one
func (s *Syncer) Pull(ctx context.Context) error {
	remote, err := s.remote.Load(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}
	doc := remote.Clone()
	s.markSaved(&doc)
	s.store.Replace(doc)
	return nil
}

// Push saves the current local document unconditionally
func (s *Syncer) Push(ctx context.Context) error {
	local := s.store.Portfolio()
	if err := s.push(ctx, &local); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}

// Commit passes the current local document to accept and pushes it only when
// accept returns nil. A rejected document never reaches the remote.
func (s *Syncer) Commit(ctx context.Context, accept func(domain.Portfolio) error) error {
	local := s.store.Portfolio()
	if err := accept(local.Clone()); err != nil {
		return err
	}
	if err := s.push(ctx, &local); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}

// Start begins watching the store. Save failures are logged and retried on
// the next change.
func (s *Syncer) Start(ctx context.Context) {
	if s.done != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.unsubscribe = s.store.Subscribe(s.enqueue)
	go s.run(ctx)
}

// Stop ends the watcher after saving any change still waiting out its
// quiet period.
func (s *Syncer) Stop() {
	if s.done == nil {
		return
	}
	s.unsubscribe()
	s.cancel()
	<-s.done
	s.done = nil
}

// enqueue keeps only the newest pending document
func (s *Syncer) enqueue(p domain.Portfolio) {
	for {
		select {
		case s.changes <- p:
			return
		default:
		}
		select {
		case <-s.changes:
		default:
		}
	}
}

func (s *Syncer) run(ctx context.Context) {
	defer close(s.done)

	var (
		pending *domain.Portfolio
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case p := <-s.changes:
			pending = &p
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if pending != nil {
				s.saveIfChanged(ctx, pending)
				pending = nil
			}

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			select {
			case p := <-s.changes:
				pending = &p
			default:
			}
			if pending != nil {
				flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
				s.saveIfChanged(flushCtx, pending)
				cancel()
			}
			return
		}
	}
}

func (s *Syncer) saveIfChanged(ctx context.Context, p *domain.Portfolio) {
	data, err := json.Marshal(p)
	if err != nil {
		s.log.Errorf("sync: failed to encode portfolio: %v", err)
		return
	}
	s.mu.Lock()
	same := bytes.Equal(data, s.lastSaved)
	s.mu.Unlock()
	if same {
		s.log.Debugf("sync: no changes since last save")
		return
	}
	if err := s.remote.Save(ctx, s.userID, p); err != nil {
		s.log.Errorf("sync: save failed: %v", err)
		return
	}
	s.setLastSaved(data)
	s.log.Debugf("sync: saved portfolio for user %s", s.userID)
}

func (s *Syncer) push(ctx context.Context, p *domain.Portfolio) error {
	if err := s.remote.Save(ctx, s.userID, p); err != nil {
		return err
	}
	s.markSaved(p)
	return nil
}

func (s *Syncer) markSaved(p *domain.Portfolio) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	s.setLastSaved(data)
}

func (s *Syncer) setLastSaved(data []byte) {
	s.mu.Lock()
	s.lastSaved = data
	s.mu.Unlock()
}
