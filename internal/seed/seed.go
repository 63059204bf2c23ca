package seed

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mock-crm/internal/domain"
	customersvc "mock-crm/internal/service/customer"
)

//go:embed customers.yaml
var defaultCustomers []byte

type seedFile struct {
	Customers []customersvc.CreateInput `yaml:"customers"`
}

// Default returns the built-in demo members.
func Default() ([]customersvc.CreateInput, error) {
	return decode(defaultCustomers)
}

// Load reads seed members from a YAML document.
func Load(r io.Reader) ([]customersvc.CreateInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return decode(data)
}

// LoadFile reads seed members from the YAML file at path.
func LoadFile(path string) ([]customersvc.CreateInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Records applies the creation rules of schema to each seed input, in order.
func Records(schema domain.Schema, inputs []customersvc.CreateInput, now time.Time) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(inputs))
	for i, in := range inputs {
		rec, err := customersvc.NewRecord(schema, in, now)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decode(data []byte) ([]customersvc.CreateInput, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return f.Customers, nil
}
