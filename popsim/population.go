package popsim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kshedden/statmodel/statmodel"
)

// Population is a columnar dataset holding one synthetic individual per
// row.  All columns are float64; binary indicators are coded 0/1.
type Population struct {
	names []string
	cols  [][]float64
	pos   map[string]int
}

// NewPopulation builds a population from named columns.  All columns
// must have the same length.
func NewPopulation(names []string, cols [][]float64) (*Population, error) {

	if len(names) != len(cols) {
		return nil, fmt.Errorf("popsim: %d names for %d columns", len(names), len(cols))
	}

	pos := make(map[string]int)
	for j, na := range names {
		if _, ok := pos[na]; ok {
			return nil, fmt.Errorf("popsim: duplicate column %q", na)
		}
		if len(cols[j]) != len(cols[0]) {
			return nil, fmt.Errorf("popsim: column %q has %d rows, want %d", na, len(cols[j]), len(cols[0]))
		}
		pos[na] = j
	}

	return &Population{names: names, cols: cols, pos: pos}, nil
}

// NumRow returns the number of individuals.
func (p *Population) NumRow() int {
	if len(p.cols) == 0 {
		return 0
	}
	return len(p.cols[0])
}

// Names returns the column names in order.
func (p *Population) Names() []string {
	return p.names
}

// Col returns the column with the given name.  The slice is not a
// copy; callers must not modify it.
func (p *Population) Col(name string) ([]float64, error) {
	j, ok := p.pos[name]
	if !ok {
		return nil, fmt.Errorf("popsim: no column %q", name)
	}
	return p.cols[j], nil
}

// col is Col for callers that have already validated the schema.
func (p *Population) col(name string) []float64 {
	v, err := p.Col(name)
	if err != nil {
		panic(err)
	}
	return v
}

// AddCol appends a new column.
func (p *Population) AddCol(name string, v []float64) error {
	if _, ok := p.pos[name]; ok {
		return fmt.Errorf("popsim: column %q already present", name)
	}
	if len(v) != p.NumRow() {
		return fmt.Errorf("popsim: column %q has %d rows, want %d", name, len(v), p.NumRow())
	}
	p.pos[name] = len(p.names)
	p.names = append(p.names, name)
	p.cols = append(p.cols, v)
	return nil
}

// Subset returns a new population containing the given rows, in order.
// The result shares no storage with the receiver.
func (p *Population) Subset(rows []int) *Population {

	cols := make([][]float64, len(p.cols))
	for j := range p.cols {
		v := make([]float64, len(rows))
		for i, r := range rows {
			v[i] = p.cols[j][r]
		}
		cols[j] = v
	}

	names := make([]string, len(p.names))
	copy(names, p.names)

	q, err := NewPopulation(names, cols)
	if err != nil {
		panic(err) // cannot happen, receiver was valid
	}
	return q
}

// Dataset exposes the population columns for model fitting.
func (p *Population) Dataset() statmodel.Dataset {
	return statmodel.NewDataset(p.cols, p.names)
}

// WriteCSV writes the population as header-included CSV, one row per
// individual.
func (p *Population) WriteCSV(w io.Writer) error {

	cw := csv.NewWriter(w)

	if err := cw.Write(p.names); err != nil {
		return err
	}

	rec := make([]string, len(p.cols))
	for i := 0; i < p.NumRow(); i++ {
		for j := range p.cols {
			rec[j] = strconv.FormatFloat(p.cols[j][i], 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadPopulationCSV reads a population written by WriteCSV.
func ReadPopulationCSV(r io.Reader) (*Population, error) {

	cr := csv.NewReader(r)

	names, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("popsim: reading header: %w", err)
	}

	cols := make([][]float64, len(names))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		for j, s := range rec {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("popsim: column %q: %w", names[j], err)
			}
			cols[j] = append(cols[j], v)
		}
	}

	return NewPopulation(names, cols)
}
