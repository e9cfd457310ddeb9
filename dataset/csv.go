package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CSV returns a source that reads a dataset from a CSV file.
// See ReadCSV for the format.
func CSV(path string) Source {
	return SourceFunc(func() (*Dataset, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open dataset")
		}
		defer f.Close()
		d, err := ReadCSV(f)
		if err != nil {
			return nil, errors.WithMessage(err, path)
		}
		return d, nil
	})
}

// ReadCSV reads a dataset with one sample per record.
// All columns but the last are numeric features
// and the last column is an integer class label.
// A first record that does not parse as numbers is taken as a header.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "read csv: %v", err)
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrMalformed, "no records")
	}

	d := new(Dataset)
	if _, _, err := parseRecord(records[0]); err != nil {
		header := records[0]
		if len(header) < 2 {
			return nil, errors.Wrap(ErrMalformed, "need at least one feature and a label")
		}
		d.FeatureNames = header[:len(header)-1]
		records = records[1:]
	}
	for i, rec := range records {
		x, y, err := parseRecord(rec)
		if err != nil {
			return nil, errors.WithMessagef(err, "record %d", i+1)
		}
		d.X = append(d.X, x)
		d.Y = append(d.Y, y)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseRecord(rec []string) ([]float64, int, error) {
	if len(rec) < 2 {
		return nil, 0, errors.Wrap(ErrMalformed, "need at least one feature and a label")
	}
	x := make([]float64, len(rec)-1)
	for j, s := range rec[:len(rec)-1] {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, 0, errors.Wrapf(ErrMalformed, "feature %d: %q", j, s)
		}
		x[j] = v
	}
	y, err := strconv.Atoi(strings.TrimSpace(rec[len(rec)-1]))
	if err != nil {
		return nil, 0, errors.Wrapf(ErrMalformed, "label: %q", rec[len(rec)-1])
	}
	return x, y, nil
}
