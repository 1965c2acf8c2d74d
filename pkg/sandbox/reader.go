package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// ValidationError carries the user-visible reason a read was refused.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// FileContent is the result of a successful sandboxed read.
type FileContent struct {
	Path    string
	Content string
}

// Reader serves read_file requests for paths under a single root directory.
// The path argument comes straight from model output, so every gate here is
// fail-closed: the first failing check wins.
type Reader struct {
	root       string
	allowedExt map[string]struct{}
	maxBytes   int64
}

// NewReader resolves and validates the sandbox root. A missing or non-directory
// root is a configuration fault, not a per-request error.
func NewReader(root string, allowedExtensions []string, maxBytes int64) (*Reader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve file root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("configured file root does not exist: %s", abs)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("stat file root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("configured file root must be a directory: %s", resolved)
	}

	extensions := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = struct{}{}
	}

	return &Reader{
		root:       resolved,
		allowedExt: extensions,
		maxBytes:   maxBytes,
	}, nil
}

// Root returns the resolved sandbox root directory.
func (r *Reader) Root() string {
	return r.root
}

// Read validates the relative path against the sandbox policy and returns the
// file content. The size gate runs before the content is read so an oversized
// file never enters memory.
func (r *Reader) Read(relPath string) (*FileContent, error) {
	if strings.TrimSpace(relPath) == "" {
		return nil, &ValidationError{Reason: "`path` is required to read a file."}
	}
	if filepath.IsAbs(relPath) {
		return nil, r.outsideRootError()
	}

	candidate := filepath.Join(r.root, relPath)
	if !r.contains(candidate) {
		return nil, r.outsideRootError()
	}

	ext := strings.ToLower(filepath.Ext(candidate))
	if _, ok := r.allowedExt[ext]; !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf(
			"Files with extension '%s' are not allowed. Allowed extensions: %s.",
			ext, strings.Join(r.sortedExtensions(), ", "),
		)}
	}

	// Resolve symlinks so a link pointing outside the root cannot pass the
	// lexical containment check above.
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return nil, &ValidationError{Reason: "Requested file does not exist."}
	}
	if !r.contains(resolved) {
		return nil, r.outsideRootError()
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &ValidationError{Reason: "Requested file does not exist."}
	}

	if info.Size() > r.maxBytes {
		return nil, &ValidationError{Reason: "Requested file exceeds the maximum readable size for the assistant."}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, &ValidationError{Reason: "Requested file is not valid UTF-8 text."}
	}

	// Report the root-relative path, never the resolved server path.
	rel, err := filepath.Rel(r.root, resolved)
	if err != nil {
		rel = relPath
	}

	return &FileContent{Path: rel, Content: string(data)}, nil
}

// contains reports whether path sits at or below the root. The comparison is
// segment-wise via filepath.Rel, so a sibling directory sharing the root's
// string prefix (e.g. /data/sandbox-other next to /data/sandbox) cannot pass.
func (r *Reader) contains(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}

func (r *Reader) outsideRootError() *ValidationError {
	return &ValidationError{Reason: "Attempted to access a file outside of the allowed directory."}
}

func (r *Reader) sortedExtensions() []string {
	extensions := make([]string, 0, len(r.allowedExt))
	for ext := range r.allowedExt {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
