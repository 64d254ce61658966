// Command takens writes the delay-coordinate embedding of a time series.
//
// Usage:
//
//	takens -m 3 -d 2 series.csv > points.csv
//	takens -m 2 -d 5 --format mebo --metric x --metric y data.mebo.zst -o points.csv.s2
//
// Input is read from a file or standard input, one sample per line with
// comma separated components, or from a mebo numeric blob. Every embedded
// point is written as one line, newest sample first.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
