// Package vector implements the knowledge store on a flat in-memory
// nearest-neighbor index with file-backed persistence.
package vector

import (
	"bytes"
	"container/heap"
	"encoding/binary"
	"io"
	"math"
	"os"
	"sort"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/fs"
)

// Binary index file layout, all little-endian:
//
//	magic    uint32  "VIDX"
//	version  uint32
//	dim      uint32
//	count    uint32
//	vectors  count * dim * float32
const (
	indexMagic   uint32 = 0x56494458
	indexVersion uint32 = 1
)

// Index is an append-only flat vector index. Search is an exhaustive scan
// over squared L2 distances; exact, and fast enough for the corpus sizes
// a single harvest produces. Not safe for concurrent use.
type Index struct {
	dim  int
	data []float32
}

// NewIndex creates an empty index for vectors of the given dimension.
func NewIndex(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, webharvest.Errorf(webharvest.EINVALID, "vector dimension must be positive, got %d", dim)
	}
	return &Index{dim: dim}, nil
}

// Dimension returns the fixed vector dimension.
func (x *Index) Dimension() int { return x.dim }

// Count returns the number of stored vectors.
func (x *Index) Count() int { return len(x.data) / x.dim }

// Add appends vectors to the index. Every vector must match the index
// dimension; on mismatch nothing is added.
func (x *Index) Add(vecs [][]float32) error {
	for _, v := range vecs {
		if len(v) != x.dim {
			return webharvest.Errorf(webharvest.EINVALID, "vector dimension %d does not match index dimension %d", len(v), x.dim)
		}
	}
	for _, v := range vecs {
		x.data = append(x.data, v...)
	}
	return nil
}

// Candidate is a scored index position.
type Candidate struct {
	Position int
	Distance float32
}

// candidateHeap is a max-heap on distance, so the worst of the current
// best k sits at the root and is cheap to evict.
type candidateHeap []Candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].Distance > h[j].Distance }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(v any) { *h = append(*h, v.(Candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Search returns the k nearest stored vectors to the query by squared L2
// distance, ascending. Squared distance preserves the ranking of true L2
// and skips the square root on every row.
func (x *Index) Search(query []float32, k int) ([]Candidate, error) {
	if len(query) != x.dim {
		return nil, webharvest.Errorf(webharvest.EINVALID, "query dimension %d does not match index dimension %d", len(query), x.dim)
	}
	count := x.Count()
	if k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	h := make(candidateHeap, 0, k)
	for i := 0; i < count; i++ {
		row := x.data[i*x.dim : (i+1)*x.dim]
		var dist float32
		for j, q := range query {
			d := row[j] - q
			dist += d * d
		}
		if len(h) < k {
			heap.Push(&h, Candidate{Position: i, Distance: dist})
		} else if dist < h[0].Distance {
			h[0] = Candidate{Position: i, Distance: dist}
			heap.Fix(&h, 0)
		}
	}

	results := []Candidate(h)
	sort.Slice(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	return results, nil
}

// WriteFile persists the index to path atomically.
func (x *Index) WriteFile(path string) error {
	var buf bytes.Buffer
	header := []uint32{indexMagic, indexVersion, uint32(x.dim), uint32(x.Count())}
	for _, v := range header {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, f := range x.data {
		if err := binary.Write(&buf, binary.LittleEndian, math.Float32bits(f)); err != nil {
			return err
		}
	}
	return fs.WriteFileAtomic(path, buf.Bytes(), 0644)
}

// ReadIndexFile loads an index previously written by WriteFile. The file
// must declare the expected dimension; a mismatch means the index was
// built with a different embedding model.
func ReadIndexFile(path string, expectDim int) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readIndex(f, expectDim)
}

func readIndex(r io.Reader, expectDim int) (*Index, error) {
	var magic, version, dim, count uint32
	for _, v := range []*uint32{&magic, &version, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, webharvest.Errorf(webharvest.EINTERNAL, "index file header truncated")
		}
	}
	if magic != indexMagic {
		return nil, webharvest.Errorf(webharvest.EINTERNAL, "not an index file")
	}
	if version != indexVersion {
		return nil, webharvest.Errorf(webharvest.EINTERNAL, "unsupported index file version %d", version)
	}
	if expectDim > 0 && int(dim) != expectDim {
		return nil, webharvest.Errorf(webharvest.EINVALID, "index dimension %d does not match expected %d", dim, expectDim)
	}

	x, err := NewIndex(int(dim))
	if err != nil {
		return nil, err
	}
	x.data = make([]float32, int(dim)*int(count))
	for i := range x.data {
		var bits uint32
		if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
			return nil, webharvest.Errorf(webharvest.EINTERNAL, "index file truncated at vector %d", i/int(dim))
		}
		x.data[i] = math.Float32frombits(bits)
	}
	return x, nil
}
