// Package testdata embeds gzip-compressed corpora of real-world reports and
// hands them out line by line.
package testdata

import (
	"bufio"
	"compress/gzip"
	"embed"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed *.gz
var data embed.FS

// lines yields the non-blank lines of one embedded corpus, trimmed.
func lines(t *testing.T, path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		f, err := data.Open(path)
		require.NoError(t, err)
		defer f.Close()

		r, err := gzip.NewReader(f)
		require.NoError(t, err)
		defer r.Close()

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
		require.NoError(t, scanner.Err())
	}
}

// METAR yields every observation report in the corpus.
func METAR(t *testing.T) iter.Seq[string] {
	return lines(t, "metar.txt.gz")
}

// TAF yields every forecast report in the corpus.
func TAF(t *testing.T) iter.Seq[string] {
	return lines(t, "taf.txt.gz")
}
