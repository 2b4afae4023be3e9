/*
Package sparse implements a sparse matrix of penalty weights. It holds the
must-link and cannot-link tables of constrained decoding, indexed by
(head word, argument word).

Entries are stored as coordinate triplets in row-major order (COO encoding).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import "fmt"

// FloatMatrix is a sparse m x n matrix of float64 weights. Unset positions are 0.
//
//     M := NewFloatMatrix(10, 10)
//     M.Accumulate(2, 3, 1.5).Accumulate(2, 3, 1.0)  // (2,3) holds 2.5
//     for _, e := range M.Entries() { ... }           // row-major order
//
type FloatMatrix struct {
	entries []Entry
	rowcnt  int
	colcnt  int
}

// Entry is a set position of a matrix together with its weight.
type Entry struct {
	Row, Col int
	Value    float64
}

// NewFloatMatrix creates an empty matrix of size m x n.
func NewFloatMatrix(m, n int) *FloatMatrix {
	return &FloatMatrix{rowcnt: m, colcnt: n}
}

// ValueCount returns the number of positions set.
func (m *FloatMatrix) ValueCount() int {
	return len(m.entries)
}

// Accumulate adds value to the weight at position (i,j). It panics if (i,j) is
// outside the matrix.
func (m *FloatMatrix) Accumulate(i, j int, value float64) *FloatMatrix {
	if i < 0 || j < 0 || i >= m.rowcnt || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	at := 0
	for ; at < len(m.entries); at++ {
		e := m.entries[at]
		if e.Row > i || e.Row == i && e.Col >= j {
			break
		}
	}
	if at < len(m.entries) && m.entries[at].Row == i && m.entries[at].Col == j {
		m.entries[at].Value += value
		return m
	}
	m.entries = append(m.entries, Entry{})
	copy(m.entries[at+1:], m.entries[at:])
	m.entries[at] = Entry{Row: i, Col: j, Value: value}
	return m
}

// Entries returns a copy of all set positions in row-major order.
func (m *FloatMatrix) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}
