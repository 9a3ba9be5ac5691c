package catalog

import "sort"

// Memory is an in-memory Catalog. It is built once at load time and
// not mutated afterwards, so concurrent reads are safe.
type Memory struct {
	topics map[Category][]Topic
}

var _ Catalog = (*Memory)(nil)

// NewMemory creates a catalog holding the given topics, grouped by
// their Category.
func NewMemory(topics ...Topic) *Memory {
	m := &Memory{topics: make(map[Category][]Topic)}
	for _, t := range topics {
		m.add(t)
	}
	return m
}

func (m *Memory) add(t Topic) {
	m.topics[t.Category] = append(m.topics[t.Category], t)
}

// merge appends every topic of other into m.
func (m *Memory) merge(other *Memory) {
	for _, ts := range other.topics {
		for _, t := range ts {
			m.add(t)
		}
	}
}

// Topics returns the topics of category. The slice is a copy.
func (m *Memory) Topics(category Category) []Topic {
	ts := m.topics[category]
	out := make([]Topic, len(ts))
	copy(out, ts)
	return out
}

// Categories returns every category with at least one topic, sorted.
func (m *Memory) Categories() []Category {
	cats := make([]Category, 0, len(m.topics))
	for c, ts := range m.topics {
		if len(ts) > 0 {
			cats = append(cats, c)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Coverage summarises how much content a category has.
type Coverage struct {
	Category Category
	Topics   int

	// Questions counts questions per degree across all topics.
	Questions map[int]int

	// Playable counts topics valid for degree 1, which is what a
	// category selection draws from.
	Playable int
}

// Coverage reports per-category content counts, sorted by category.
func (m *Memory) Coverage() []Coverage {
	var out []Coverage
	for _, c := range m.Categories() {
		cov := Coverage{Category: c, Questions: make(map[int]int)}
		for _, t := range m.topics[c] {
			cov.Topics++
			if t.ValidFor(1) {
				cov.Playable++
			}
			for d, qs := range t.Degrees {
				cov.Questions[d] += len(qs)
			}
		}
		out = append(out, cov)
	}
	return out
}
