// Package config loads the tunables that govern path validation and the
// stress-test command from a YAML file on disk, and can notify a caller when
// that file changes so it can read them again.
package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/arbortree/arbor/pathutil"
)

// Tunables is the full set of runtime-adjustable knobs. Zero value is not
// meaningful; use Defaults() as a starting point.
type Tunables struct {
	// MaxFolderNameLength bounds each path component, wired to
	// pathutil.Configure.
	MaxFolderNameLength int `yaml:"max_folder_name_length"`

	// NameCharClass is a regexp character class body (e.g. "[a-z0-9_-]")
	// describing permitted characters in a folder name, wired to
	// pathutil.Configure.
	NameCharClass string `yaml:"name_char_class"`

	// StressWorkers and StressOpsPerWorker size the cmd/arbor stress
	// subcommand's default run.
	StressWorkers      int `yaml:"stress_workers"`
	StressOpsPerWorker int `yaml:"stress_ops_per_worker"`
	StressPathUniverse int `yaml:"stress_path_universe_depth"`
}

// Defaults returns the tunables arbor ships with absent a config file.
func Defaults() Tunables {
	return Tunables{
		MaxFolderNameLength: pathutil.MaxNameLength,
		NameCharClass:       `[a-z0-9_-]`,
		StressWorkers:       8,
		StressOpsPerWorker:  100000,
		StressPathUniverse:  4,
	}
}

// Apply wires t into pathutil's live validation state.
func (t Tunables) Apply() error {
	return pathutil.Configure(t.NameCharClass, t.MaxFolderNameLength)
}

// File is a YAML-backed Tunables source, following the read/write-via-temp-
// rename shape of a config file on disk, plus an optional fsnotify-driven
// live reload.
type File struct {
	path    string
	watcher *fsnotify.Watcher
}

// UseFile returns a File rooted at path. The file need not exist yet; Read
// then behaves as if it contained Defaults().
func UseFile(path string) *File {
	return &File{path: path}
}

// Read loads Tunables from disk, falling back to Defaults() for a file that
// does not exist, and for any field the file does not set. A field the file
// sets explicitly, even to zero, takes the file's value.
func (f *File) Read() (Tunables, error) {
	t := Defaults()

	buf, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return Tunables{}, fmt.Errorf("reading config file %v: %w", f.path, err)
	}

	if err := yaml.Unmarshal(buf, &t); err != nil {
		return Tunables{}, fmt.Errorf("unmarshalling config file %v: %w", f.path, err)
	}
	return t, nil
}

// Write stores t to disk via a temp file plus atomic rename.
func (f *File) Write(t Tunables) error {
	buf, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0644); err != nil {
		return fmt.Errorf("writing %v: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("renaming %v to %v: %w", tmp, f.path, err)
	}
	return nil
}

// Watch registers changeChan to receive a (non-blocking) notification every
// time the underlying file is modified on disk. Passing nil unregisters any
// previously registered watch. Only one watch may be active at a time.
func (f *File) Watch(changeChan chan<- struct{}) error {
	if f.watcher != nil {
		if err := f.watcher.Close(); err != nil {
			return err
		}
		f.watcher = nil
	}
	if changeChan == nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	go func(w *fsnotify.Watcher) {
		for {
			select {
			case _, ok := <-w.Events:
				if !ok {
					return
				}
				select {
				case changeChan <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}(w)

	if err := w.Add(f.path); err != nil {
		w.Close()
		return err
	}
	f.watcher = w
	return nil
}
