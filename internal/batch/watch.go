package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc"
)

// settleDelay is how long a file must go without events before it is
// processed. Writers typically emit a Create followed by several Writes.
const settleDelay = 250 * time.Millisecond

// Watch processes the input directory once and then keeps processing PDFs
// that are created, rewritten or moved into it until ctx is cancelled.
// Watching requires the input directory to be on the operating system
// filesystem.
func (p *Processor) Watch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Subscribe before the initial pass so nothing written in between is
	// missed.
	if err := watcher.Add(p.cfg.InputDir); err != nil {
		return fmt.Errorf("watch %s: %w", p.cfg.InputDir, err)
	}

	if _, err := p.Run(ctx); err != nil {
		return err
	}
	p.log.Info("watching for new documents", "input", p.cfg.InputDir)

	var (
		wg     conc.WaitGroup
		mu     sync.Mutex
		timers = make(map[string]*time.Timer)
		due    = make(chan string)
	)
	defer wg.Wait()
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[path]; ok {
			t.Reset(settleDelay)
			return
		}
		timers[path] = time.AfterFunc(settleDelay, func() {
			mu.Lock()
			delete(timers, path)
			mu.Unlock()
			select {
			case due <- path:
			case <-ctx.Done():
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			p.log.Info("watch stopped", "input", p.cfg.InputDir)
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".pdf") {
				continue
			}
			schedule(ev.Name)

		case path := <-due:
			wg.Go(func() {
				if err := p.ProcessFile(path); err == nil {
					p.log.Info("document written", "file", path, "output", OutputPath(p.cfg.OutputDir, path))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Warn("watch error", "error", err)
		}
	}
}
