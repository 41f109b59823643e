// Package directory holds the compiled-in demo companies and employees used
// by the preview page and the CLI.
package directory

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lumio/pkg/model"
)

//go:embed sample.yaml
var sampleDirectory []byte

var (
	// ErrEmployeeNotFound is returned when a lookup misses.
	ErrEmployeeNotFound = errors.New("directory: employee not found")
	// ErrCompanyNotFound is returned when an employee references an unknown
	// company.
	ErrCompanyNotFound = errors.New("directory: company not found")
)

type document struct {
	Companies []model.Company `yaml:"companies"`
	Employees []entry         `yaml:"employees"`
}

type entry struct {
	model.Employee `yaml:",inline"`

	Company string `yaml:"company"`
}

// Directory is an immutable index of companies and their employees.
type Directory struct {
	companies map[string]model.Company
	employees map[string]entry
	order     []string
}

// Default returns the embedded sample directory.
func Default() (*Directory, error) {
	return Parse(sampleDirectory, "sample.yaml")
}

// Load reads a directory document from fsys.
func Load(fsys fs.FS, path string) (*Directory, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("directory: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML directory document. Every employee must carry an id
// and reference a known company.
func Parse(data []byte, origin string) (*Directory, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("directory: parse %s: %w", origin, err)
	}

	d := &Directory{
		companies: make(map[string]model.Company, len(doc.Companies)),
		employees: make(map[string]entry, len(doc.Employees)),
	}
	for _, company := range doc.Companies {
		id := strings.TrimSpace(company.ID)
		if id == "" {
			return nil, fmt.Errorf("directory: %s defines a company without an id", origin)
		}
		if _, dup := d.companies[id]; dup {
			return nil, fmt.Errorf("directory: %s: duplicate company %q", origin, id)
		}
		d.companies[id] = company
	}
	for _, e := range doc.Employees {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("directory: %s defines an employee without an id", origin)
		}
		if _, dup := d.employees[id]; dup {
			return nil, fmt.Errorf("directory: %s: duplicate employee %q", origin, id)
		}
		if _, ok := d.companies[e.Company]; !ok {
			return nil, fmt.Errorf("%w: %q (employee %q)", ErrCompanyNotFound, e.Company, id)
		}
		d.employees[id] = e
		d.order = append(d.order, id)
	}
	sort.Strings(d.order)
	return d, nil
}

// EmployeeIDs lists employee ids in sorted order.
func (d *Directory) EmployeeIDs() []string {
	return append([]string(nil), d.order...)
}

// Employee returns the employee and their company.
func (d *Directory) Employee(id string) (model.Employee, model.Company, error) {
	e, ok := d.employees[strings.TrimSpace(id)]
	if !ok {
		return model.Employee{}, model.Company{}, fmt.Errorf("%w: %q", ErrEmployeeNotFound, id)
	}
	return e.Employee, d.companies[e.Company], nil
}

// Signature builds a signature for the employee with every block shown.
func (d *Directory) Signature(id string, variant model.TemplateID) (model.Signature, error) {
	employee, company, err := d.Employee(id)
	if err != nil {
		return model.Signature{}, err
	}
	return model.Signature{
		Employee: employee,
		Company:  company,
		Variant:  variant,
		Show:     model.AllShown(),
	}, nil
}
