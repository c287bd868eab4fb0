// Command analysis measures the observed false positive rate of saltbloom
// filters against their configured target.
//
// For each capacity:rate pair it fills a filter to capacity with distinct
// keys, probes as many keys that were never added, and prints the observed
// rate next to the target and the model estimate.
//
//	analysis -pairs 10000:0.01,100000:0.1 -hash murmur3
//	analysis -hash metro -seed 42
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jcalabro/saltbloom"
)

type pair struct {
	capacity uint64
	fpRate   float64
}

func parsePairs(s string) ([]pair, error) {
	var pairs []pair
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, p, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("pair %q: want capacity:rate", field)
		}
		capacity, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("pair %q: capacity: %w", field, err)
		}
		fpRate, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("pair %q: rate: %w", field, err)
		}
		pairs = append(pairs, pair{capacity: capacity, fpRate: fpRate})
	}
	if len(pairs) == 0 {
		return nil, errors.New("no pairs given")
	}
	return pairs, nil
}

// hasherFor resolves a hasher name. Seeded hashers take seed; the others
// ignore it.
func hasherFor(name string, seed uint64) (saltbloom.Hasher, error) {
	if name == "metro" {
		return saltbloom.Metro(seed), nil
	}
	h, ok := saltbloom.HasherByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown hasher %q", name)
	}
	return h, nil
}

type result struct {
	pair
	bitCount  uint64
	rounds    uint32
	observed  float64
	estimated float64
	elapsed   time.Duration
}

func measure(p pair, h saltbloom.Hasher) (result, error) {
	start := time.Now()

	f, err := saltbloom.New(p.capacity, p.fpRate, saltbloom.String(), saltbloom.WithHasher(h))
	if err != nil {
		return result{}, err
	}
	defer f.Close()

	for i := range p.capacity {
		if err := f.Add("in-" + strconv.FormatUint(i, 10)); err != nil {
			return result{}, err
		}
	}

	var falsePositives uint64
	for i := range p.capacity {
		if f.Contains("out-" + strconv.FormatUint(i, 10)) {
			falsePositives++
		}
	}

	return result{
		pair:      p,
		bitCount:  f.BitCount(),
		rounds:    f.Rounds(),
		observed:  float64(falsePositives) / float64(p.capacity),
		estimated: f.EstimatedFalsePositiveRate(),
		elapsed:   time.Since(start),
	}, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("analysis: ")

	pairsFlag := flag.String("pairs", "10000:0.01,10000:0.001,100000:0.1,1000000:0.001", "comma separated capacity:rate pairs")
	hashFlag := flag.String("hash", "sha256", "hasher, one of "+strings.Join(saltbloom.HasherNames(), ", "))
	seedFlag := flag.Uint64("seed", 0, "seed for seeded hashers (metro)")
	flag.Parse()

	pairs, err := parsePairs(*pairsFlag)
	if err != nil {
		log.Fatal(err)
	}
	h, err := hasherFor(*hashFlag, *seedFlag)
	if err != nil {
		log.Fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "capacity\ttarget\tbits\tk\testimated\tobserved\tratio\telapsed\t")

	var over int
	for _, p := range pairs {
		log.Printf("measuring capacity=%d rate=%v hash=%s seed=%d", p.capacity, p.fpRate, *hashFlag, *seedFlag)
		r, err := measure(p, h)
		if err != nil {
			log.Fatal(err)
		}
		if r.observed > 2*r.fpRate {
			over++
		}
		fmt.Fprintf(w, "%d\t%.4f\t%d\t%d\t%.5f\t%.5f\t%.2f\t%s\t\n",
			r.capacity, r.fpRate, r.bitCount, r.rounds, r.estimated, r.observed, r.observed/r.fpRate, r.elapsed.Round(time.Millisecond))
	}
	w.Flush()

	if over > 0 {
		log.Printf("%d of %d configurations exceeded twice their target rate", over, len(pairs))
		os.Exit(1)
	}
}
