// Package workspace tracks the script files an editor has open and keeps
// their parse results current, so the LSP server can hand out diagnostics.
package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/dlg/project"
	"github.com/dhamidi/dlg/script"
	"github.com/dhamidi/dlg/script/parser"
)

type Workspace struct {
	mu        sync.RWMutex
	rootDir   string
	config    project.Config
	configErr error
	files     map[string]*FileInfo
}

type FileInfo struct {
	Path     string
	Content  []byte
	Nodes    []script.Parseable
	ParseErr error
}

// New creates a workspace rooted at rootDir. A broken dlg.yaml falls back
// to the defaults; the error is kept for the caller to report.
func New(rootDir string) *Workspace {
	cfg, err := project.LoadFrom(rootDir)
	if err != nil {
		cfg = project.Defaults()
	}
	return &Workspace{
		rootDir:   rootDir,
		config:    cfg,
		configErr: err,
		files:     make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string { return w.rootDir }

func (w *Workspace) Config() project.Config { return w.config }

func (w *Workspace) ConfigErr() error { return w.configErr }

// IsScriptPath reports whether path looks like a dialogue script.
func IsScriptPath(path string) bool {
	switch filepath.Ext(path) {
	case ".dlg", ".txt":
		return true
	}
	return false
}

// ScanAll parses every script file under the workspace root.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if IsScriptPath(path) {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return w.UpdateFile(path, content)
}

// UpdateFile replaces the tracked content for path and re-parses it.
func (w *Workspace) UpdateFile(path string, content []byte) error {
	lines := script.Clean(strings.Split(string(content), "\n"))
	nodes, parseErr := parser.Parse(lines, parser.WithBudget(w.config.DisplayBudget))

	w.mu.Lock()
	w.files[path] = &FileInfo{
		Path:     path,
		Content:  content,
		Nodes:    nodes,
		ParseErr: parseErr,
	}
	w.mu.Unlock()
	return parseErr
}

func (w *Workspace) CloseFile(path string) {
	w.mu.Lock()
	delete(w.files, path)
	w.mu.Unlock()
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Diagnostic is one reportable problem in a script file.
type Diagnostic struct {
	Line    int // 1-based; 0 when the error has no position
	Message string
}

// Diagnostics returns the problems found in path. Parsing stops at the
// first error, so there is at most one.
func (w *Workspace) Diagnostics(path string) []Diagnostic {
	file := w.GetFile(path)
	if file == nil || file.ParseErr == nil {
		return nil
	}
	return []Diagnostic{{
		Line:    script.LineOf(file.ParseErr),
		Message: file.ParseErr.Error(),
	}}
}
