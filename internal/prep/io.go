// Package prep reads and writes everything the optimizer exchanges with the
// outside world: input alignments, evaluator score files, the run
// configuration, and the round-history report.
package prep

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	gal "github.com/evolbioinfo/goalign/align"
	"github.com/evolbioinfo/goalign/io/fasta"
	"github.com/evolbioinfo/goalign/io/phylip"

	"topiary/internal/msa"
	"topiary/internal/opt"
)

var (
	ErrInvalidFile   = errors.New("invalid file")
	ErrInvalidFormat = errors.New("invalid format")
	ErrWritingFile   = errors.New("error writing file")
)

type Format int

const (
	Fasta Format = iota
	Phylip
)

var ParseFormat = map[string]Format{
	"fasta":  Fasta,
	"phylip": Phylip,
}

func (f *Format) Set(s string) error {
	if format, ok := ParseFormat[s]; ok {
		*f = format
		return nil
	}
	return fmt.Errorf("\"%s\" is not a valid alignment file format", s)
}

func (f Format) String() string {
	for s, fr := range ParseFormat {
		if fr == f {
			return s
		}
	}
	panic(fmt.Sprintf("format (%d) does not exist", f))
}

// Ext returns the conventional file extension for the format.
func (f Format) Ext() string {
	switch f {
	case Fasta:
		return "fa"
	case Phylip:
		return "phy"
	default:
		panic(fmt.Sprintf("format (%d) does not exist", f))
	}
}

// ReadAlignment parses an alignment file into the optimizer's column matrix.
// All rows must have equal length (the input must actually be aligned).
func ReadAlignment(path string, format Format) (*msa.Alignment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s, %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			panic(fmt.Sprintf("could not close file %s, %s", path, err))
		}
	}()
	var al gal.Alignment
	switch format {
	case Fasta:
		al, err = fasta.NewParser(file).Parse()
	case Phylip:
		al, err = phylip.NewParser(file, false).Parse()
	default:
		return nil, fmt.Errorf("%w, not a valid alignment format", ErrInvalidFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%w, error parsing alignment %s: %s", ErrInvalidFormat, path, err.Error())
	}
	names := make([]string, 0, al.NbSequences())
	seqs := make([][]byte, 0, al.NbSequences())
	al.Iterate(func(name string, sequence string) bool {
		names = append(names, name)
		seqs = append(seqs, []byte(sequence))
		return false
	})
	aln, err := msa.NewAlignment(names, seqs)
	if err != nil {
		return nil, fmt.Errorf("%w, %s: %s", ErrInvalidFile, path, err.Error())
	}
	return aln, nil
}

// ReadScores reads the column evaluator's output: one numeric score per line,
// one line per column, in column order. Blank lines are skipped; an empty
// file is an error, since an empty ranking cannot support any removal
// decision.
func ReadScores(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s, %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			panic(fmt.Sprintf("could not close file %s, %s", path, err))
		}
	}()
	scores := make([]float64, 0)
	scanner := bufio.NewScanner(file)
	for i := 1; scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		score, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("%w, bad score on line %d of %s: %s",
				ErrInvalidFormat, i, path, err.Error())
		}
		scores = append(scores, score)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s, %w", path, err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w, empty score file %s", ErrInvalidFile, path)
	}
	return scores, nil
}

// WriteAlignment serializes the column matrix in the requested interchange
// format. Phylip output is relaxed (full identifiers, not strict fixed-width
// columns), which is what the common tree builders expect.
func WriteAlignment(aln *msa.Alignment, format Format, path string) error {
	al := gal.NewAlign(gal.UNKNOWN)
	for i := 0; i < aln.NbSequences(); i++ {
		if err := al.AddSequence(aln.Name(i), string(aln.Sequence(i)), ""); err != nil {
			return fmt.Errorf("%w %s, %s", ErrWritingFile, path, err.Error())
		}
	}
	var out string
	switch format {
	case Fasta:
		out = fasta.WriteAlignment(al)
	case Phylip:
		out = phylip.WriteAlignment(al, false, false, false)
	default:
		panic(fmt.Sprintf("format (%d) does not exist", format))
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("%w %s, %s", ErrWritingFile, path, err.Error())
	}
	return nil
}

// WriteRecordsToCSV writes the labeled round history to w, best support
// first.
//
// There are five columns: "Round", "Columns", "Lowest Column Score",
// "Tree Support", "Optimality".
func WriteRecordsToCSV(records []opt.Record, w io.Writer) (err error) {
	data := make([][]string, len(records)+1)
	data[0] = []string{"Round", "Columns", "Lowest Column Score", "Tree Support", "Optimality"}
	for i, rec := range records {
		data[i+1] = []string{
			strconv.Itoa(rec.Round),
			strconv.Itoa(rec.Length),
			strconv.FormatFloat(rec.Lowest, 'f', -1, 64),
			strconv.FormatFloat(rec.Support, 'f', -1, 64),
			rec.Label.String(),
		}
	}
	writer := csv.NewWriter(w)
	defer func() {
		writer.Flush()
		if err == nil {
			err = writer.Error()
		} else if writer.Error() != nil {
			log.Printf("error when flushing output csv, %s", writer.Error())
		}
	}()
	if err = writer.WriteAll(data); err != nil {
		err = fmt.Errorf("%w, %s", ErrWritingFile, err)
		return
	}
	return
}
