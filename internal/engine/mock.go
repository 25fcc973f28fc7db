package engine

// Mock is a test double for Engine. It is not safe for concurrent use;
// tests must only inspect it after synchronizing with the goroutine that
// drives it.
type Mock struct {
	AppendErr map[string]error // Per-path errors returned by Append

	appended []string
	pending  int
	playing  bool
	stopped  bool
	level    float64
	closed   bool
}

var _ Engine = (*Mock)(nil)

// NewMock creates a mock engine with unity volume.
func NewMock() *Mock {
	return &Mock{level: 1}
}

func (m *Mock) Append(path string) error {
	if err := m.AppendErr[path]; err != nil {
		return err
	}
	m.appended = append(m.appended, path)
	m.pending++
	return nil
}

func (m *Mock) Play() { m.playing = true }

func (m *Mock) Pause() { m.playing = false }

func (m *Mock) Stop() {
	m.playing = false
	m.stopped = true
	m.pending = 0
}

func (m *Mock) SkipOne() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m *Mock) Len() int { return m.pending }

func (m *Mock) Volume() float64 { return m.level }

func (m *Mock) SetVolume(level float64) { m.level = level }

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Appended returns every path successfully queued, in append order.
func (m *Mock) Appended() []string { return m.appended }

// Playing reports whether the engine is unpaused.
func (m *Mock) Playing() bool { return m.playing }

// Stopped reports whether Stop has been called.
func (m *Mock) Stopped() bool { return m.stopped }
