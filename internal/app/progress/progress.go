package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Manager renders upload progress bars on a terminal
type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type Bar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

// CreateBytesBar adds a bar counting size bytes
func (m *Manager) CreateBytesBar(size int64, description string) *Bar {
	if !m.enabled || m.container == nil {
		return &Bar{enabled: false}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bar := m.container.AddBar(size,
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.Counters(decor.SizeB1024(0), "% .1f / % .1f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaSpeed(decor.SizeB1024(0), "% .1f", 30, decor.WCSyncSpace), " ✓ ",
			),
		),
	)

	return &Bar{
		bar:     bar,
		enabled: true,
	}
}

// ProxyReader counts bytes read through r. Disabled bars return r unchanged.
func (b *Bar) ProxyReader(r io.Reader) io.Reader {
	if !b.enabled || b.bar == nil {
		return r
	}
	return b.bar.ProxyReader(r)
}

// Complete marks the bar done at its current position
func (b *Bar) Complete() {
	if b.enabled && b.bar != nil {
		b.bar.SetTotal(b.bar.Current(), true)
	}
}

// Abort removes the bar, e.g. when the upload failed
func (b *Bar) Abort() {
	if b.enabled && b.bar != nil {
		b.bar.Abort(true)
	}
}

func (m *Manager) Wait() {
	if m.enabled && m.container != nil {
		m.container.Wait()
	}
}
