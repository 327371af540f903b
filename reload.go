// Package reload is the hot-reload facade over the rest of the module: it
// wires loader, ledger, and operations together behind one swappable
// handle, the same way cli/check.go wires loader and ledger for a one-shot
// check, but kept live across file changes instead of running once.
package reload

import (
	"context"
	stdErrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/zhang-accounting/ledger/ast"
	"github.com/zhang-accounting/ledger/ledger"
	"github.com/zhang-accounting/ledger/loader"
	"github.com/zhang-accounting/ledger/operations"
	"github.com/fsnotify/fsnotify"
)

// debounceWait is how long to wait after the first file-change event before
// reloading, coalescing the burst of writes an editor typically produces
// for a single save.
const debounceWait = 500 * time.Millisecond

// drainWindow is how long to keep waiting for additional events once the
// debounce window has started, before deciding the burst is over.
const drainWindow = 100 * time.Millisecond

// Store is a reloadable, concurrency-safe handle onto a processed ledger.
// Readers call Queries/Errors to snapshot the current state without ever
// seeing a torn write; a background watcher swaps in a freshly processed
// ledger each time the watched files change.
//
// The store owns no long-lived references into the old ledger after a
// swap: once Reload replaces current, the previous *ledger.Ledger is simply
// garbage once its last reader releases it.
type Store struct {
	root string

	mu      sync.RWMutex
	current *ledger.Ledger
	lastErr error

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// Open loads root once synchronously, then starts a background watcher that
// reprocesses the whole file set on every change. Callers must call
// Close when done to stop the watcher goroutine.
func Open(ctx context.Context, root string) (*Store, error) {
	s := &Store{root: root}

	if err := s.reload(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting file watcher: %w", err)
	}
	if err := watcher.Add(root); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", root, err)
	}
	s.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.watchLoop(watchCtx)

	return s, nil
}

// Close stops the watcher and releases its file handles.
func (s *Store) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil {
		<-s.done
	}
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Queries returns a read-only query handle over the current ledger
// snapshot. The snapshot is stable for the lifetime of the returned
// *operations.Queries even if a reload swaps current concurrently — the
// underlying *ledger.Ledger is never mutated after Process returns, only
// replaced wholesale.
func (s *Store) Queries() *operations.Queries {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return operations.New(s.current)
}

// LastError returns the error from the most recent reload attempt, if any.
// A failed reload leaves the previous snapshot in place (fatal errors) or
// surfaces as validation errors queryable via Queries().Errors() (recoverable
// errors) — LastError only ever reports the fatal, load-aborting kind.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// reload loads and processes the root file set into a fresh ledger, then
// atomically swaps it in. On fatal error (I/O, parse), the previous store is
// retained, matching spec's "previous Store is retained" fatal-tier
// contract; recoverable errors still produce a usable (if erroring) ledger
// that replaces current, since the caller wants to see the remaining state.
func (s *Store) reload(ctx context.Context) error {
	ldr := loader.New(loader.WithFollowIncludes())
	tree, err := ldr.Load(ctx, s.root)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	if err := ast.ApplyPushPopDirectives(tree); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}
	if err := ast.SortDirectives(tree); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	l := ledger.New()
	processErr := l.Process(ctx, tree)

	s.mu.Lock()
	s.current = l
	s.lastErr = nil
	s.mu.Unlock()

	if processErr != nil {
		// Recoverable validation errors are not fatal to a reload — the
		// ledger they're attached to already replaced current above, and
		// callers that want them see them via Queries().Errors(). Only a
		// processErr that ISN'T a ValidationErrors means Process failed in
		// some other, unexpected way worth surfacing as a reload failure.
		var validationErrors *ledger.ValidationErrors
		if !stdErrors.As(processErr, &validationErrors) {
			return processErr
		}
	}

	return nil
}

// watchLoop drains fsnotify events, applies the 500ms+100ms debounce, and
// triggers reload once per coalesced burst. It exits when ctx is canceled.
func (s *Store) watchLoop(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !isRelevantEvent(event) {
				continue
			}
			if !s.waitForBurstToSettle(ctx) {
				return
			}
			// A fatal reload error leaves the previous snapshot live;
			// LastError surfaces it to whoever checks.
			_ = s.reload(ctx)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		}
	}
}

// waitForBurstToSettle blocks debounceWait after the first event, then
// drains further events in drainWindow increments until a full window
// passes with nothing new — coalescing an editor's burst of writes (create,
// write, chmod, rename-into-place) into the single reload that follows.
func (s *Store) waitForBurstToSettle(ctx context.Context) bool {
	timer := time.NewTimer(debounceWait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	for {
		timer.Reset(drainWindow)
		select {
		case <-ctx.Done():
			return false
		case <-s.watcher.Events:
			continue
		case <-timer.C:
			return true
		}
	}
}

// isRelevantEvent filters out pure read/chmod noise; only writes, creates,
// removes, and renames warrant a reload.
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
