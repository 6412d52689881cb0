package fastconfig

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Holder 持有由配置文件构造的记录，并支持重新加载与文件监听。
//
// 每次重新加载都通过 [Schema.Load] 构造新实例再整体替换，失败时保留旧实例，
// 因此 [Holder.Get] 永远不会看到更新到一半的记录。返回的实例应视为只读。
type Holder[T any] struct {
	mu       sync.RWMutex
	schema   *Schema[T]
	path     string
	opts     []Option
	current  *T
	onChange []func(*T)
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder 加载初始配置，失败时返回错误。
func NewHolder[T any](schema *Schema[T], path string, opts ...Option) (*Holder[T], error) {
	cfg, err := schema.Load(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Holder[T]{
		schema:  schema,
		path:    absPath,
		opts:    opts,
		current: cfg,
		stopCh:  make(chan struct{}),
	}, nil
}

// Path 返回配置文件的绝对路径。
func (h *Holder[T]) Path() string { return h.path }

// Get 返回当前的记录实例。
func (h *Holder[T]) Get() *T {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.current
}

// OnChange 注册重新加载成功后的回调。
func (h *Holder[T]) OnChange(fn func(*T)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// Reload 重新读取配置文件，失败时保留旧配置并返回错误。
func (h *Holder[T]) Reload() error {
	slog.Info("Reloading config", "path", h.path)

	cfg, err := h.schema.Load(h.path, h.opts...)
	if err != nil {
		slog.Error("Config reload failed, keeping old config", "path", h.path, "error", err)
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	h.current = cfg
	callbacks := slices.Clone(h.onChange)
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	slog.Info("Config reloaded", "path", h.path)

	return nil
}

// Watch 监听配置文件变化并自动重新加载。
//
// 监听的是所在目录，以兼容编辑器先写临时文件再重命名的保存方式。
func (h *Holder[T]) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	h.mu.Lock()
	h.watcher = watcher
	h.mu.Unlock()

	go h.watchLoop(watcher)
	slog.Info("Watching config file", "path", h.path)

	return nil
}

// Close 停止文件监听，可重复调用。
func (h *Holder[T]) Close() error {
	var err error
	h.stopOnce.Do(func() {
		close(h.stopCh)

		h.mu.Lock()
		defer h.mu.Unlock()
		if h.watcher != nil {
			err = h.watcher.Close()
		}
	})

	return err
}

func (h *Holder[T]) watchLoop(watcher *fsnotify.Watcher) {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			// 原子保存表现为 Create
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				slog.Debug("Config file changed", "event", event.Op.String(), "file", event.Name)
				_ = h.Reload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", "error", err)

		case <-h.stopCh:
			return
		}
	}
}
