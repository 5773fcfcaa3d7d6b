// Package imagecache loads and caches the images a figure draws.
//
// A drawing pass must never block on I/O, so Get only reports what is
// already in memory and Request starts a background load on a miss. When
// a load finishes, the OnLoad callbacks fire; a host typically redraws
// its figure from there. Failed loads are remembered with their error
// instead of staying pending forever, and Retry clears them.
//
// Keys are slash-separated paths such as "img/cart.png". TeX labels are
// addressed by content hash through TexKey.
package imagecache

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/gogpu/pdraw/internal/logging"
)

// State is the load state of a cache entry.
type State uint8

const (
	// Missing means the key was never requested.
	Missing State = iota
	// Pending means a load is in progress.
	Pending
	// Loaded means the image is available.
	Loaded
	// Failed means the last load failed; see Cache.Err.
	Failed
)

var stateNames = [...]string{"missing", "pending", "loaded", "failed"}

// String returns the lower-case state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

type entry struct {
	state State
	img   image.Image
	err   error
}

// LoadFunc is called after every load, successful or not.
type LoadFunc func(key string, err error)

type loadHook struct {
	fn LoadFunc
}

// Cache is a concurrency-safe image cache in front of a Source.
type Cache struct {
	src     Source
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	onLoad  []*loadHook

	group singleflight.Group
	wg    sync.WaitGroup
}

// Option configures a Cache.
type Option func(*Cache)

// WithTimeout bounds each background load. The default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) {
		c.timeout = d
	}
}

// WithLogger sets the logger. By default the shared pdraw logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

// New creates an empty cache reading from src.
func New(src Source, opts ...Option) *Cache {
	c := &Cache{
		src:     src,
		timeout: 30 * time.Second,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.Get()
}

// Get returns the image for key if it is loaded, and the entry state.
func (c *Cache) Get(key string) (image.Image, State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, Missing
	}
	return e.img, e.state
}

// Err returns the error of a failed entry, or nil.
func (c *Cache) Err(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && e.state == Failed {
		return e.err
	}
	return nil
}

// Put stores an already decoded image under key, replacing any entry.
func (c *Cache) Put(key string, img image.Image) {
	c.mu.Lock()
	c.entries[key] = &entry{state: Loaded, img: img}
	c.mu.Unlock()
}

// Request starts a background load of key unless it is already pending,
// loaded or failed, and returns the entry state after the call.
func (c *Cache) Request(key string) State {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.state
	}
	c.entries[key] = &entry{state: Pending}
	c.mu.Unlock()

	c.log().Debug("imagecache: loading", "key", key)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		_ = c.load(ctx, key)
	}()
	return Pending
}

// Retry forgets a failed entry and requests it again.
func (c *Cache) Retry(key string) State {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.state == Failed {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return c.Request(key)
}

// Preload loads keys in parallel and waits for them. Keys that are
// already loaded are skipped. A failing key does not stop the others; it
// returns the first load error. Keys whose load is cancelled through ctx
// go back to Missing.
func (c *Cache) Preload(ctx context.Context, keys ...string) error {
	var g errgroup.Group
	g.SetLimit(8)
	for _, key := range keys {
		if _, st := c.Get(key); st == Loaded {
			continue
		}
		c.mu.Lock()
		if _, ok := c.entries[key]; !ok {
			c.entries[key] = &entry{state: Pending}
		}
		c.mu.Unlock()
		g.Go(func() error {
			return c.load(ctx, key)
		})
	}
	return g.Wait()
}

// OnLoad registers fn to be called after every load. Callbacks run on the
// loading goroutine. The returned func unregisters fn; calling it more
// than once is harmless.
func (c *Cache) OnLoad(fn LoadFunc) (remove func()) {
	h := &loadHook{fn: fn}
	c.mu.Lock()
	c.onLoad = append(c.onLoad, h)
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.onLoad = slices.DeleteFunc(c.onLoad, func(x *loadHook) bool { return x == h })
		c.mu.Unlock()
	}
}

// Listeners returns the number of registered OnLoad callbacks.
func (c *Cache) Listeners() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.onLoad)
}

// Wait blocks until all background loads started by Request are done.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Keys returns the sorted keys of all entries.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.entries))
}

// load fetches and decodes key, concurrent loads of the same key sharing
// one fetch, and records the outcome.
func (c *Cache) load(ctx context.Context, key string) error {
	v, err, _ := c.group.Do(key, func() (any, error) {
		rc, err := c.src.Open(ctx, key)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		img, _, err := Decode(rc)
		return img, err
	})

	c.mu.Lock()
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		if e, ok := c.entries[key]; ok && e.state == Pending {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.log().Debug("imagecache: load cancelled", "key", key)
		return err
	}
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	if err != nil {
		err = fmt.Errorf("imagecache: load %s: %w", key, err)
		e.state, e.img, e.err = Failed, nil, err
	} else {
		e.state, e.img, e.err = Loaded, v.(image.Image), nil
	}
	callbacks := slices.Clone(c.onLoad)
	c.mu.Unlock()

	if err != nil {
		c.log().Warn("imagecache: load failed", "key", key, "err", err)
	} else {
		c.log().Debug("imagecache: loaded", "key", key)
	}
	for _, h := range callbacks {
		h.fn(key, err)
	}
	return err
}
