package sysstat

import (
	"github.com/neox5/acctstat/internal/series"
)

// collection keeps one entity list of the retained snapshot bound to gauges.
// Rows are stored in discovery order and looked up by entity label; the list
// only ever grows.
type collection[T any] struct {
	label  string
	id     func(*T) string
	fields []field[T]

	rows   *[]T
	index  map[string]int
	gauges [][]*series.Series
}

func newCollection[T any](label string, id func(*T) string, fields []field[T], rows *[]T) *collection[T] {
	return &collection[T]{
		label:  label,
		id:     id,
		fields: fields,
		rows:   rows,
		index:  make(map[string]int),
	}
}

// adopt indexes the rows already present in the retained list. Duplicate
// labels collapse onto the first row, keeping the last values.
func (c *collection[T]) adopt(reg *series.Registry, host string) {
	src := *c.rows
	// Compaction in place: the write index never passes the read index.
	*c.rows = src[:0]
	c.merge(reg, host, src)
}

// merge copies src into the retained rows and returns the labels that were
// not seen before.
func (c *collection[T]) merge(reg *series.Registry, host string, src []T) []string {
	var added []string
	for i := range src {
		id := c.id(&src[i])
		if idx, ok := c.index[id]; ok {
			(*c.rows)[idx] = src[i]
			continue
		}

		*c.rows = append(*c.rows, src[i])
		c.index[id] = len(*c.rows) - 1
		c.gauges = append(c.gauges, c.register(reg, host, id))
		added = append(added, id)
	}
	return added
}

func (c *collection[T]) register(reg *series.Registry, host, id string) []*series.Series {
	key := series.NewKey("host", host, c.label, id)
	gs := make([]*series.Series, len(c.fields))
	for i, f := range c.fields {
		gs[i] = reg.GetOrCreate(f.name, key, series.KindGauge)
	}
	return gs
}

// publish writes every bound row into its gauges.
func (c *collection[T]) publish() {
	for idx, gs := range c.gauges {
		row := &(*c.rows)[idx]
		for i, f := range c.fields {
			gs[i].Set(f.get(row))
		}
	}
}

func (c *collection[T]) size() int {
	return len(c.gauges)
}
