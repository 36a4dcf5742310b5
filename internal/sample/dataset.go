package sample

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Dataset groups records of every sample type.
type Dataset struct {
	People    []Person   `yaml:"people"`
	Documents []Document `yaml:"documents"`
	Recipes   []Recipe   `yaml:"recipes"`
}

// Builtin returns the built-in demo dataset. Each call returns fresh slices.
func Builtin() *Dataset {
	return &Dataset{
		People: []Person{
			{Name: "John Doe", Age: 42, Dob: date(1980, 1, 1)},
			{Name: "Jane Doe", Age: 41, Dob: date(1981, 1, 1)},
			{Name: "Baby Doe", Age: 12, Dob: date(2010, 1, 1)},
		},
		Documents: []Document{
			{Title: "Birth Certificate", IssuedBy: date(1980, 1, 1)},
			{Title: "College Degree", IssuedBy: date(2003, 8, 1)},
			{Title: "Marriage Certificate", IssuedBy: date(2008, 1, 1)},
		},
		Recipes: []Recipe{
			{Name: "Fried Rice", Ingredients: []string{"eggs", "rice", "oil", "vegetables"}},
			{Name: "Omelette", Ingredients: []string{"eggs", "butter", "oil"}},
			{Name: "Pho", Ingredients: []string{"pho", "chicken", "spice"}},
			{Name: "sandwich", Ingredients: []string{"bread", "ham", "vegetables"}},
		},
	}
}

// LoadDataset reads a YAML dataset file.
//
// Unknown keys are rejected so that typos in field names do not silently
// produce zero values.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return ParseDataset(data)
}

// ParseDataset decodes a YAML dataset.
func ParseDataset(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return &ds, nil
}

// Marshal encodes the dataset as YAML.
func (d *Dataset) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
