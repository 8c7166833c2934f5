package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/isoform"
)

// FASTAWidth is the number of bases per FASTA sequence line.
const FASTAWidth = 60

var complement = strings.NewReplacer(
	"A", "T", "C", "G", "G", "C", "T", "A",
	"a", "t", "c", "g", "g", "c", "t", "a",
)

// ReverseComplement returns the reverse complement of bases. Only ACGT (in
// either case) are complemented; other letters are kept as is.
func ReverseComplement(bases string) string {
	b := []byte(bases)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return complement.Replace(string(b))
}

// WriteFASTARecord writes one FASTA record with the sequence wrapped at
// [FASTAWidth] columns.
func WriteFASTARecord(w io.Writer, name, bases string) error {
	var sb strings.Builder
	sb.WriteString(">" + name + "\n")
	for i := 0; i < len(bases); i += FASTAWidth {
		sb.WriteString(bases[i:min(i+FASTAWidth, len(bases))])
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteFASTA writes the sequence of a read-derived transcript to
// dir/<cluster ID>.fasta and returns the file path. Bases are stored in
// forward-strand sense, so reverse-strand clusters are written reverse
// complemented to restore read sense. dir is created when missing.
func WriteFASTA(dir string, t *isoform.Transcript) (string, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return "", err
	}
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s exists but is not a directory", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	id, err := ClusterID(t.Name)
	if err != nil {
		return "", err
	}
	bases := t.Bases
	if t.Strand() == isoform.Reverse {
		bases = ReverseComplement(bases)
	}

	path := filepath.Join(dir, id+".fasta")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteFASTARecord(f, t.Name, bases); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
