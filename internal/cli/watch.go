package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/siderail/pkg/page"
	"github.com/matzehuels/siderail/pkg/pipeline"
)

const defaultDebounce = 150 * time.Millisecond

// watchCommand creates the watch command, which keeps a layout alive and
// relays it out whenever the document changes on disk.
func (c *CLI) watchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [document]",
		Short: "Relayout a document every time it changes",
		Long: `Lay out a document, then watch the file. Geometry edits (boxes, heights)
relayout the existing regions in place, keeping their children, the same way
a live page reacts to resizes. Structural edits (rails, content children or
items added or removed) rebuild the layout from scratch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], debounce, os.Stdout)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last change before relaying out")

	return cmd
}

// watcher owns the live layout of one document.
type watcher struct {
	path   string
	layout *pipeline.Layout
	logger *log.Logger
	out    io.Writer
}

func (c *CLI) runWatch(ctx context.Context, input string, debounce time.Duration, out io.Writer) error {
	logger := loggerFromContext(ctx)

	w := &watcher{path: filepath.Clean(input), logger: logger, out: out}
	if err := w.rebuild(); err != nil {
		return err
	}
	defer w.close()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Close()

	// Editors often replace the file, so watch its directory.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.print()
	printInfo("Watching %s", w.path)

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("document changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-fire:
			if err := w.reload(); err != nil {
				printWarning("%s: %v", w.path, err)
				continue
			}
			w.print()
		}
	}
}

// reload reads the document again and applies it. A document with a new
// structure replaces the layout.
func (w *watcher) reload() error {
	doc, err := page.ReadFile(w.path)
	if err != nil {
		return err
	}
	if err := w.layout.Update(doc); err != nil {
		w.logger.Info("document structure changed, rebuilding", "reason", err)
		return w.rebuildFrom(doc)
	}
	w.logger.Debug("relaid out", "rails", len(w.layout.Rails()))
	return nil
}

func (w *watcher) rebuild() error {
	doc, err := page.ReadFile(w.path)
	if err != nil {
		return err
	}
	return w.rebuildFrom(doc)
}

func (w *watcher) rebuildFrom(doc *page.Document) error {
	l, err := pipeline.NewLayout(doc, w.logger)
	if err != nil {
		return err
	}
	w.close()
	w.layout = l
	return nil
}

func (w *watcher) close() {
	if w.layout != nil {
		w.layout.Close()
	}
}

func (w *watcher) print() {
	fmt.Fprintln(w.out, StyleTitle.Render(time.Now().Format("15:04:05")+" "+w.path))
	printRegions(w.out, w.layout.Plan())
}
