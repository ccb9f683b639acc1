package textedit

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// Options holds toolkit-level text input settings, loaded from textedit.toml.
type Options struct {
	// CursorBlinkMillis is the caret blink half-period in milliseconds.
	CursorBlinkMillis int `toml:"cursor_blink_millis"`

	// PasswordMask is the character shown in place of password text.
	PasswordMask string `toml:"password_mask"`

	// WordWrap enables soft wrapping in multiline editors.
	WordWrap bool `toml:"word_wrap"`

	Keyboard KeyboardOptions `toml:"keyboard"`
}

// KeyboardOptions maps field roles to on-screen keyboard layouts.
type KeyboardOptions struct {
	// Default is the layout advertised by fields with no explicit type.
	Default VirtualKeyboardType `toml:"default"`

	// Password is the layout advertised by password fields.
	Password VirtualKeyboardType `toml:"password"`
}

// BlinkInterval returns the caret blink half-period as a duration.
func (o Options) BlinkInterval() time.Duration {
	return time.Duration(o.CursorBlinkMillis) * time.Millisecond
}

// MaskRune returns the password mask as a rune, defaulting to a bullet.
func (o Options) MaskRune() rune {
	for _, r := range o.PasswordMask {
		return r
	}
	return '•'
}

// DefaultOptions returns sensible defaults for text input behavior.
func DefaultOptions() Options {
	return Options{
		CursorBlinkMillis: 530, // Standard cursor blink rate
		PasswordMask:      "•",
		WordWrap:          true,
		Keyboard: KeyboardOptions{
			Default:  TextKeyboard,
			Password: PasswordKeyboard,
		},
	}
}

// LoadOptions loads options from the given TOML file.
// A missing file returns the defaults without error.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if opts.CursorBlinkMillis <= 0 {
		opts.CursorBlinkMillis = DefaultOptions().CursorBlinkMillis
	}

	return opts, nil
}

// SaveOptions writes options to the given TOML file.
func SaveOptions(path string, opts Options) error {
	data, err := toml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// OptionsWatcher reloads an options file when it changes on disk and
// notifies a callback with the new values.
type OptionsWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Options)
	done     chan struct{}
}

// WatchOptions starts watching the given options file. onChange is called
// from a background goroutine with the reloaded options after each change.
func WatchOptions(path string, onChange func(Options)) (*OptionsWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so the file can be replaced atomically
	// (editors often write-and-rename).
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	w := &OptionsWatcher{
		path:     path,
		watcher:  watcher,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.watchLoop()

	return w, nil
}

// Close stops watching. Safe to call once.
func (w *OptionsWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

// watchLoop coalesces rapid events into a single reload.
func (w *OptionsWatcher) watchLoop() {
	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(50 * time.Millisecond)
				debounceC = debounce.C
			} else {
				debounce.Stop()
				debounce.Reset(50 * time.Millisecond)
			}

		case <-debounceC:
			opts, err := LoadOptions(w.path)
			if err != nil {
				log.Printf("textedit: reload %s: %v", w.path, err)
				continue
			}
			w.onChange(opts)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("textedit: watch %s: %v", w.path, err)
		}
	}
}
