package seqalign

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Record is one FASTA or FASTQ record. Qual is empty for FASTA.
type Record struct {
	ID   string
	Seq  []byte
	Qual []byte
}

func init() {
	// symbols are checked by the vocabulary instead
	seq.ValidateSeq = false
}

// ReadFASTX reads all records of a (gzipped) FASTA or FASTQ file. "-" reads
// from stdin.
func ReadFASTX(file string) ([]*Record, error) {
	reader, err := fastx.NewReader(nil, file, "")
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	defer reader.Close()

	records := make([]*Record, 0, 64)
	var record *fastx.Record
	for {
		record, err = reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, file)
		}
		records = append(records, &Record{
			ID:   string(record.ID),
			Seq:  append([]byte(nil), record.Seq.Seq...),
			Qual: append([]byte(nil), record.Seq.Qual...),
		})
	}
	return records, nil
}

// ReadFASTA reads sequence records, dropping any qualities.
func ReadFASTA(file string) ([]*Record, error) {
	records, err := ReadFASTX(file)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		r.Qual = nil
	}
	return records, nil
}

// ReadFASTQ reads records that must all carry quality scores.
func ReadFASTQ(file string) ([]*Record, error) {
	records, err := ReadFASTX(file)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if len(r.Qual) != len(r.Seq) {
			return nil, errors.Errorf("%s: record %s has %d bases but %d quality scores",
				file, r.ID, len(r.Seq), len(r.Qual))
		}
	}
	return records, nil
}
