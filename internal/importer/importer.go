package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"mock-crm/internal/domain"
	customersvc "mock-crm/internal/service/customer"
)

// CustomerWriter adds customers; *customer.Service satisfies it.
type CustomerWriter interface {
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
}

// Result summarises an import run.
type Result struct {
	Imported int
	Skipped  []string
}

// CSVImporter reads member exports and creates customers from them.
type CSVImporter struct {
	reader *csv.Reader
	writer CustomerWriter
}

func NewCSVImporter(r io.Reader, w CustomerWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, writer: w}
}

// Run creates one customer per row. Rows whose member number already exists
// are skipped; any other failure stops the run.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["member_number"]; !ok {
		return res, fmt.Errorf("read headers: member_number column: %w", domain.ErrMissingRequiredField)
	}

	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}

		in, ok := parseRow(record, index)
		if !ok {
			continue
		}
		if _, err := i.writer.Create(ctx, in); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				res.Skipped = append(res.Skipped, in.MemberNumber)
				continue
			}
			return res, fmt.Errorf("line %d: create customer %q: %w", line, in.MemberNumber, err)
		}
		res.Imported++
	}

	return res, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// parseRow maps a record onto CreateInput. Blank rows are reported as !ok;
// an empty name or date_joined cell counts as not supplied.
func parseRow(record []string, index map[string]int) (customersvc.CreateInput, bool) {
	blank := true
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			blank = false
			break
		}
	}
	if blank {
		return customersvc.CreateInput{}, false
	}

	in := customersvc.CreateInput{
		MemberNumber:  pick(record, index, "member_number"),
		FirstName:     pick(record, index, "first_name"),
		MiddleInitial: pick(record, index, "middle_initial"),
		LastName:      pick(record, index, "last_name"),
		Sex:           pick(record, index, "sex"),
		DateOfBirth:   pick(record, index, "date_of_birth"),
		DateEnd:       pick(record, index, "date_end"),
		Email:         pick(record, index, "email"),
		Mobile:        pick(record, index, "mobile"),
		Address:       pick(record, index, "address"),
	}
	if name := pick(record, index, "name"); name != "" {
		in.Name = &name
	}
	if joined := pick(record, index, "date_joined"); joined != "" {
		in.DateJoined = &joined
	}
	return in, true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
