package classpath

import (
	"io"
	"slices"
	"sync"
)

// mockObserver records negotiation and delivery activity. Interest
// defaults to everything; set interests to answer per url. The mutex
// keeps it safe for parallel scans.
type mockObserver struct {
	mu          sync.Mutex
	interests   map[string]bool
	interestErr error
	selectFn    func(batch []Entry) []Entry
	selectErr   error
	deliverErr  error

	asked     []string
	batches   [][]Entry
	delivered []delivery
}

// delivery is one Deliver invocation with its drained stream content.
type delivery struct {
	entry Entry
	body  string
}

func (m *mockObserver) Interested(url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.asked = append(m.asked, url)
	if m.interestErr != nil {
		return false, m.interestErr
	}
	if m.interests == nil {
		return true, nil
	}
	return m.interests[url], nil
}

func (m *mockObserver) Select(batch []Entry) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.batches = append(m.batches, slices.Clone(batch))
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	if m.selectFn != nil {
		return m.selectFn(batch), nil
	}
	return batch, nil
}

func (m *mockObserver) Deliver(e Entry, r io.Reader) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deliverErr != nil {
		return m.deliverErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.delivered = append(m.delivered, delivery{entry: e, body: string(body)})
	return nil
}

// deliveredPaths returns the delivered entry paths in delivery order.
func (m *mockObserver) deliveredPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.delivered))
	for _, d := range m.delivered {
		paths = append(paths, d.entry.Path)
	}
	return paths
}

// batchSizes returns the entry count of every offered batch in order.
func (m *mockObserver) batchSizes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	sizes := make([]int, 0, len(m.batches))
	for _, b := range m.batches {
		sizes = append(sizes, len(b))
	}
	return sizes
}
