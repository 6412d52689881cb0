package fastconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultSearchDepth 是向上查找的默认层数。
const DefaultSearchDepth = 10

// projectMarkers 标记版本控制的项目根目录。
var projectMarkers = []string{".git", ".hg"}

type searchOptions struct {
	start      string
	maxDepth   int
	stopAtRoot bool
}

// SearchOption 配置 [Search]。
type SearchOption func(*searchOptions)

// SearchFrom 设置起始目录，默认为当前工作目录。
func SearchFrom(dir string) SearchOption {
	return func(o *searchOptions) {
		o.start = dir
	}
}

// SearchDepth 设置最多向上查找的层数。
func SearchDepth(depth int) SearchOption {
	return func(o *searchOptions) {
		o.maxDepth = depth
	}
}

// WithoutRootStop 在经过项目根目录后继续向上查找。
func WithoutRootStop() SearchOption {
	return func(o *searchOptions) {
		o.stopAtRoot = false
	}
}

// Search 从起始目录向上查找名为 target 的文件或目录，返回其路径。
//
// target 以 "/" 结尾时只匹配目录。
// 默认最多查找 [DefaultSearchDepth] 层，并在项目根目录（含 .git 或 .hg）处停止。
func Search(target string, opts ...SearchOption) (string, bool) {
	o := &searchOptions{maxDepth: DefaultSearchDepth, stopAtRoot: true}
	for _, opt := range opts {
		opt(o)
	}

	dir, ok := startDir(o.start)
	if !ok {
		return "", false
	}

	wantDir := strings.HasSuffix(target, "/")
	name := strings.TrimSuffix(target, "/")
	for range o.maxDepth {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && (!wantDir || info.IsDir()) {
			return candidate, true
		}
		if o.stopAtRoot && isRootDir(dir) {
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}

	return "", false
}

// IsProjectRoot 报告 path 是否位于项目根目录：path 为文件时检查其所在目录。
// 不存在的路径返回 false。
func IsProjectRoot(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		path = filepath.Dir(path)
	}

	return isRootDir(path)
}

// FindProjectRoot 从 start 向上查找项目根目录，start 为空时使用当前工作目录。
func FindProjectRoot(start string) (string, bool) {
	dir, ok := startDir(start)
	if !ok {
		return "", false
	}

	for range DefaultSearchDepth {
		if isRootDir(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}

	return "", false
}

func startDir(start string) (string, bool) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		return wd, true
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	return abs, true
}

func isRootDir(dir string) bool {
	for _, marker := range projectMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}

	return false
}
