// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program knn runs a brute-force k-nearest-neighbor search over ARFF data.
//
// Usage:
//
//	knn -k 3 -train features.arff -labels labels.arff -test test.arff
//
// The training features, training labels, and test features are printed,
// followed by the spread of each feature column. Then for each test row, the
// distance to each training row is printed as "distance index", followed by
// one group per label column of the k nearest labels as "label distance".
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/creachadair/mlkit/knn"
	"github.com/creachadair/mlkit/matrix"
)

var (
	numNeighbors = flag.Int("k", 1, "Number of neighbors (>= 1)")
	trainPath    = flag.String("train", "", "Training features (ARFF)")
	labelPath    = flag.String("labels", "", "Training labels (ARFF)")
	testPath     = flag.String("test", "", "Test features (ARFF)")
	quiet        = flag.Bool("q", false, "Print only the nearest labels")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -k N -train F -labels L -test T\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("knn: ")

	if *numNeighbors < 1 {
		log.Fatalf("Invalid neighbor count %d, must be >= 1", *numNeighbors)
	}
	if *trainPath == "" || *labelPath == "" || *testPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	out := bufio.NewWriter(os.Stdout)
	err := run(out, config{
		K:      *numNeighbors,
		Train:  *trainPath,
		Labels: *labelPath,
		Test:   *testPath,
		Quiet:  *quiet,
	})
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		log.Fatal(err)
	}
}

type config struct {
	K                   int
	Train, Labels, Test string
	Quiet               bool
}

// run writes the report described in the package comment to out. Output
// written before an error is reported remains in out.
func run(out io.Writer, cfg config) error {
	train, err := matrix.LoadARFF(cfg.Train)
	if err != nil {
		return fmt.Errorf("loading training features: %w", err)
	}
	labels, err := matrix.LoadARFF(cfg.Labels)
	if err != nil {
		return fmt.Errorf("loading training labels: %w", err)
	}
	test, err := matrix.LoadARFF(cfg.Test)
	if err != nil {
		return fmt.Errorf("loading test features: %w", err)
	}

	if !cfg.Quiet {
		for _, m := range []*matrix.Matrix{train, labels, test} {
			if err := m.Print(out); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
	}

	model, err := knn.NewModel(train, labels)
	if err != nil {
		return fmt.Errorf("creating model: %w", err)
	}
	if !cfg.Quiet {
		for c, s := range model.Spread.Data() {
			fmt.Fprintf(out, "Column %d spread is %v\n", c, s)
		}
	}

	for r := range test.Rows() {
		point := test.Row(r)
		if !cfg.Quiet {
			dist, err := model.Distances(point)
			if err != nil {
				return fmt.Errorf("test row %d: %w", r, err)
			}
			for _, nb := range dist {
				fmt.Fprintf(out, "%v %d\n", nb.Distance, nb.Index)
			}
		}
		groups, err := model.Neighbors(point, cfg.K)
		if err != nil {
			return fmt.Errorf("test row %d: %w", r, err)
		}
		for _, g := range groups {
			fmt.Fprintln(out)
			for _, lb := range g {
				fmt.Fprintf(out, "%v %v\n", lb.Value, lb.Distance)
			}
		}
	}
	return nil
}
