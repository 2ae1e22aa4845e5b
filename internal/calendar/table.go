package calendar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrDataUnavailable is returned when the boundary table cannot be loaded or
// has no row for the requested year.
var ErrDataUnavailable = errors.New("calendar data unavailable")

// Epoch is the first year of the shipped boundary table.
const Epoch = 2000

const columns = 2 + 2*12

// Instant is a comparable point inside a year: YM = year*100+month,
// MD = day*10000+hour*100+minute.
type Instant struct {
	YM int
	MD int
}

func At(year, month, day, hour, minute int) Instant {
	return Instant{YM: year*100 + month, MD: day*10000 + hour*100 + minute}
}

func (i Instant) Before(o Instant) bool {
	if i.YM != o.YM {
		return i.YM < o.YM
	}
	return i.MD < o.MD
}

// Row holds the year boundary (입춘) and the twelve month boundaries of one
// calendar year, from 소한 in January to 대설 in December.
type Row struct {
	Year   Instant
	Months [12]Instant
}

type Table struct {
	epoch int
	rows  []Row
}

// NewTable validates rows and returns a table whose first row is epoch.
func NewTable(epoch int, rows []Row) (*Table, error) {
	for i, r := range rows {
		if err := r.validate(epoch + i); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
	}
	return &Table{epoch: epoch, rows: rows}, nil
}

// LoadTable reads a comma separated boundary file. Lines starting with '#'
// are ignored; every other line is one year, starting at Epoch.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()
	return ReadTable(f, Epoch)
}

func ReadTable(r io.Reader, epoch int) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = columns
	cr.TrimLeadingSpace = true

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: year %d: %v", ErrDataUnavailable, epoch+len(rows), err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty boundary table", ErrDataUnavailable)
	}
	return NewTable(epoch, rows)
}

func parseRow(rec []string) (Row, error) {
	var vals [columns]int
	for i, s := range rec {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return Row{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		vals[i] = v
	}
	row := Row{Year: Instant{YM: vals[0], MD: vals[1]}}
	for m := 0; m < 12; m++ {
		row.Months[m] = Instant{YM: vals[2+2*m], MD: vals[3+2*m]}
	}
	return row, nil
}

func (r Row) validate(year int) error {
	if r.Year.YM/100 != year {
		return fmt.Errorf("year boundary %d outside %d", r.Year.YM, year)
	}
	for m, b := range r.Months {
		if b.YM/100 != year {
			return fmt.Errorf("month boundary %d: %d outside %d", m+1, b.YM, year)
		}
		if m > 0 && !r.Months[m-1].Before(b) {
			return fmt.Errorf("month boundaries %d and %d not increasing", m, m+1)
		}
	}
	return nil
}

// Row returns the boundaries for year.
func (t *Table) Row(year int) (Row, error) {
	if t == nil {
		return Row{}, fmt.Errorf("%w: no boundary table loaded", ErrDataUnavailable)
	}
	i := year - t.epoch
	if i < 0 || i >= len(t.rows) {
		return Row{}, fmt.Errorf("%w: year %d outside %d-%d", ErrDataUnavailable, year, t.epoch, t.epoch+len(t.rows)-1)
	}
	return t.rows[i], nil
}

func (t *Table) Years() (first, last int) {
	return t.epoch, t.epoch + len(t.rows) - 1
}
