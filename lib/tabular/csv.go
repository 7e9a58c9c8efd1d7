package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"researchkit/lib/textutil"
	"strconv"
)

type ReadOptions struct {
	// WHATWG encoding label, empty means utf-8
	Encoding string
	// when set and the first header cell equals it, that column is treated
	// as a row index and dropped
	IndexColumn string
}

// ReadCSV loads a csv file with a header row.
func ReadCSV(path string, opts ReadOptions) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, err := textutil.NewReader(file, opts.Encoding)
	if err != nil {
		return nil, err
	}
	ds, err := Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if opts.IndexColumn != "" && ds.Width() > 0 && ds.columns[0].Name == opts.IndexColumn {
		ds.columns = ds.columns[1:]
	}
	return ds, nil
}

// Decode reads csv records from `r`, the first record is the header.
func Decode(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return FromRecords(header, records)
}

type WriteOptions struct {
	// when set, a leading index column with this header is written,
	// numbered from IndexStart
	IndexName  string
	IndexStart int
}

// WriteCSV writes the dataset to `path`, creating parent directories.
func WriteCSV(path string, d *Dataset, opts WriteOptions) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	err = Encode(file, d, opts)
	if err != nil {
		return err
	}
	return file.Close()
}

// Encode writes the dataset as csv into `w`.
func Encode(w io.Writer, d *Dataset, opts WriteOptions) error {
	writer := csv.NewWriter(w)

	header := d.Names()
	if opts.IndexName != "" {
		header = append([]string{opts.IndexName}, header...)
	}
	err := writer.Write(header)
	if err != nil {
		return err
	}

	for r := 0; r < d.rows; r++ {
		rec := d.Record(r)
		if opts.IndexName != "" {
			rec = append([]string{strconv.Itoa(opts.IndexStart + r)}, rec...)
		}
		err = writer.Write(rec)
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
