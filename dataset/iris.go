package dataset

import (
	"bytes"
	_ "embed"
)

//go:embed iris.csv
var irisCSV []byte

// Iris returns a source for Fisher's iris data:
// 150 samples of 4 measurements, 50 of each of 3 species.
// The samples are ordered by class.
func Iris() Source {
	return SourceFunc(func() (*Dataset, error) {
		d, err := ReadCSV(bytes.NewReader(irisCSV))
		if err != nil {
			return nil, err
		}
		d.TargetNames = []string{"setosa", "versicolor", "virginica"}
		return d, nil
	})
}
