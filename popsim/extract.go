package popsim

import (
	"fmt"
	"io"

	"github.com/kshedden/dstream/dstream"
)

// extractVars are the raw extract columns, IPUMS-style names.  The
// extract is assumed to be pre-filtered to a single survey year and to
// adults (age 18+).
var extractVars = []string{
	"CLUSTER", "STRATA", "SERIAL", "PERWT", "COUNTY", "CITY", "PUMA",
	"METFIPS", "SEX", "AGE", "EDUC", "RACE", "HISPAN",
}

// Extract holds one column per raw survey variable.
type Extract struct {
	cols map[string][]float64
	nrow int
}

// ReadExtract loads a raw survey extract from header-included CSV.
func ReadExtract(r io.Reader) (*Extract, error) {

	var tc []dstream.VarType
	for _, na := range extractVars {
		tc = append(tc, dstream.VarType{Name: na, Type: dstream.Float64})
	}

	da := dstream.FromCSV(r).SetTypes(tc).ChunkSize(100000).HasHeader().Done()
	dm := dstream.MemCopy(da, false)

	ex := &Extract{cols: make(map[string][]float64)}
	for _, na := range extractVars {
		dm.Reset()
		v := dstream.GetCol(dm, na).([]float64)
		ex.cols[na] = v
	}
	ex.nrow = len(ex.cols["PERWT"])

	for _, na := range extractVars {
		if len(ex.cols[na]) != ex.nrow {
			return nil, fmt.Errorf("popsim: extract column %s has %d rows, want %d",
				na, len(ex.cols[na]), ex.nrow)
		}
	}

	return ex, nil
}

// NewExtract builds an extract directly from columns, which must cover
// every raw survey variable.
func NewExtract(cols map[string][]float64) (*Extract, error) {

	ex := &Extract{cols: make(map[string][]float64)}
	for _, na := range extractVars {
		v, ok := cols[na]
		if !ok {
			return nil, fmt.Errorf("popsim: extract is missing column %s", na)
		}
		ex.cols[na] = v
	}
	ex.nrow = len(ex.cols["PERWT"])

	for _, na := range extractVars {
		if len(ex.cols[na]) != ex.nrow {
			return nil, fmt.Errorf("popsim: extract column %s has %d rows, want %d",
				na, len(ex.cols[na]), ex.nrow)
		}
	}

	return ex, nil
}

// NumRow returns the number of survey records in the extract.
func (ex *Extract) NumRow() int {
	return ex.nrow
}

// expandIndex frequency-weights the extract: record i appears
// int(PERWT[i]) times in the returned row index.
func (ex *Extract) expandIndex() []int {

	var ix []int
	for i, w := range ex.cols["PERWT"] {
		for k := 0; k < int(w); k++ {
			ix = append(ix, i)
		}
	}
	return ix
}
