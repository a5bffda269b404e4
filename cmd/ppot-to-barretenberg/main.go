// ppot-to-barretenberg imports the first 2^k powers of a BN254 perpetual
// powers-of-tau response file and exports them as two raw files:
// <dst-prefix>-<k>.g1 holds the 2^k powers in G1, <dst-prefix>-<k>.g2 holds
// g2 and s·g2, all uncompressed with no header.
//
// Usage:
//
//	ppot-to-barretenberg <response> <dst-prefix> [k]
//
// k defaults to the degree of the response file, 28.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/giuliop/kzgsrs"
	"github.com/giuliop/kzgsrs/ceremony"
	"github.com/giuliop/kzgsrs/config"
	"github.com/giuliop/kzgsrs/curve"
	"github.com/giuliop/kzgsrs/utils"
)

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintf(os.Stderr, "usage: %s <response> <dst-prefix> [k]\n", os.Args[0])
		os.Exit(2)
	}
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := conf.ApplyLogLevel(); err != nil {
		log.Fatalf("error setting log level: %v", err)
	}
	k := conf.SourceK
	if len(os.Args) == 4 {
		n, err := strconv.ParseUint(os.Args[3], 10, 32)
		if err != nil {
			log.Fatalf("invalid degree %q: %v", os.Args[3], err)
		}
		k = uint32(n)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := run(os.Args[1], os.Args[2], k, conf, logger); err != nil {
		log.Fatalf("error exporting %s: %v", os.Args[1], err)
	}
}

func run(src, prefix string, k uint32, conf *config.Config, logger zerolog.Logger) error {
	g1File := fmt.Sprintf("%s-%d.g1", prefix, k)
	g2File := fmt.Sprintf("%s-%d.g2", prefix, k)
	if conf.SkipUpToDate && !utils.ShouldRegenerate(src, g1File, g2File) {
		logger.Info().Str("g1", g1File).Str("g2", g2File).Msg("up to date, skipping")
		return nil
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", kzgsrs.ErrIO, err)
	}
	defer file.Close()

	srs, err := kzgsrs.ReadPartial(curve.BN254(), file, ceremony.PerpetualPowersOfTau{K: conf.SourceK}, k,
		kzgsrs.WithWorkers(conf.Workers), kzgsrs.WithLogger(logger))
	if err != nil {
		return err
	}

	for _, out := range []struct {
		name  string
		write func(io.Writer) error
	}{
		{g1File, srs.WriteRawG1},
		{g2File, srs.WriteRawG2},
	} {
		if err := utils.WriteFileAtomic(out.name, out.write); err != nil {
			return err
		}
		logger.Info().Str("file", out.name).Msg("written")
	}
	return nil
}
