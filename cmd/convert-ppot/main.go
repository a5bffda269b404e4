// convert-ppot imports a BN254 perpetual powers-of-tau response file and writes
// one native srs file per degree, from k down to 1.
//
// Usage:
//
//	convert-ppot <response> <dst-prefix> [k]
//
// The file of degree j is written to <dst-prefix><j>. k defaults to the
// degree of the response file, 28. Settings are read by the config package:
// KZGSRS_RAW=true writes uncompressed points, KZGSRS_SKIP_UP_TO_DATE=true keeps
// outputs newer than the response file.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

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
		log.Fatalf("error converting %s: %v", os.Args[1], err)
	}
}

func run(src, prefix string, k uint32, conf *config.Config, logger zerolog.Logger) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", kzgsrs.ErrIO, err)
	}
	defer file.Close()

	start := time.Now()
	srs, err := kzgsrs.ReadPartial(curve.BN254(), file, ceremony.PerpetualPowersOfTau{K: conf.SourceK}, k,
		kzgsrs.WithWorkers(conf.Workers), kzgsrs.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info().Uint32("k", k).Dur("took", time.Since(start)).Msg("response file imported")

	for j := k; j >= 1; j-- {
		dst := fmt.Sprintf("%s%d", prefix, j)
		if conf.SkipUpToDate && !utils.ShouldRegenerate(src, dst) {
			logger.Info().Str("file", dst).Msg("up to date, skipping")
			continue
		}
		if err := srs.Downsize(j); err != nil {
			return err
		}
		write := srs.Write
		if conf.Raw {
			write = srs.WriteRaw
		}
		if err := utils.WriteFileAtomic(dst, write); err != nil {
			return err
		}
		logger.Info().Str("file", dst).Uint32("k", j).Msg("srs written")
	}
	return nil
}
