/*
Build a synthetic population from a raw survey extract.

The extract is header-included CSV (gzipped if the name ends in .gz),
pre-filtered to one survey year and to adults.  The population is
written as CSV with the simulated exposure and outcome columns.
*/

package main

import (
	"compress/gzip"
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/yadevi/case-control/popsim"
)

func main() {

	var (
		extractFile string
		configFile  string
		outFile     string
		n           int
		seed        uint64
	)
	flag.StringVar(&extractFile, "extract", "", "raw survey extract (csv or csv.gz)")
	flag.StringVar(&configFile, "config", "", "optional yaml scenario file")
	flag.StringVar(&outFile, "out", "population.csv", "population output file")
	flag.IntVar(&n, "n", 0, "population size (overrides config)")
	flag.Uint64Var(&seed, "seed", 0, "base sampling seed (overrides config)")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if extractFile == "" {
		logger.Fatal().Msg("no extract file given")
	}

	conf := popsim.DefaultConfig()
	if configFile != "" {
		fid, err := os.Open(configFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("opening config")
		}
		conf, err = popsim.LoadConfig(fid)
		fid.Close()
		if err != nil {
			logger.Fatal().Err(err).Msg("loading config")
		}
	}
	if n > 0 {
		conf.N = n
	}
	if seed > 0 {
		conf.Seeds.Sample = seed
	}

	fid, err := os.Open(extractFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening extract")
	}
	defer fid.Close()

	var rdr io.Reader = fid
	if len(extractFile) > 3 && extractFile[len(extractFile)-3:] == ".gz" {
		gid, err := gzip.NewReader(fid)
		if err != nil {
			logger.Fatal().Err(err).Msg("opening extract")
		}
		defer gid.Close()
		rdr = gid
	}

	ex, err := popsim.ReadExtract(rdr)
	if err != nil {
		logger.Fatal().Err(err).Msg("reading extract")
	}
	logger.Info().Int("records", ex.NumRow()).Msg("extract loaded")

	pop, err := popsim.Synthesize(ex, conf.N, conf.Seeds, conf.Exposure, conf.Outcome)
	if err != nil {
		logger.Fatal().Err(err).Msg("synthesis failed")
	}

	y, _ := pop.Col("Y")
	a, _ := pop.Col("A")
	var ny, na float64
	for i := range y {
		ny += y[i]
		na += a[i]
	}
	logger.Info().
		Int("n", pop.NumRow()).
		Float64("case_prevalence", ny/float64(pop.NumRow())).
		Float64("exposure_prevalence", na/float64(pop.NumRow())).
		Msg("population synthesized")

	out, err := os.Create(outFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("creating output")
	}
	defer out.Close()

	if err := pop.WriteCSV(out); err != nil {
		logger.Fatal().Err(err).Msg("writing population")
	}
	logger.Info().Str("file", outFile).Msg("population written")
}
