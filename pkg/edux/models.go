package edux

import (
	"fmt"
	"strings"
)

// Context is a fully resolved selection: it fixes which classification page
// subsequent form reads and submissions target.
type Context struct {
	Course string
	Path   []string
	Column string
}

func (c Context) String() string {
	s := c.Course + " " + strings.Join(c.Path, "/")
	if c.Column != "" {
		s += " " + c.Column
	}
	return s
}

// Field is a single named input of the score form.
type Field struct {
	Name  string
	Value string
	Type  string // lower-cased input type, "text" when absent
}

// Editable reports whether the field is a value slot a user would change,
// as opposed to bookkeeping inputs and buttons.
func (f Field) Editable() bool {
	switch f.Type {
	case "hidden", "submit", "button", "reset", "image":
		return false
	}
	return true
}

// Form holds the inputs of a classification edit form in document order.
type Form struct {
	ID     string
	Fields []Field
}

// Values returns the field name to value mapping that gets submitted.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		values[field.Name] = field.Value
	}
	return values
}

// Value returns the current value of a field.
func (f *Form) Value(name string) (string, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Set changes the value of an existing field.
func (f *Form) Set(name, value string) error {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			f.Fields[i].Value = value
			return nil
		}
	}
	return fmt.Errorf("form %s has no field %q", f.ID, name)
}

// Columns returns the names of the editable fields in document order.
func (f *Form) Columns() []string {
	var columns []string
	for _, field := range f.Fields {
		if field.Editable() {
			columns = append(columns, field.Name)
		}
	}
	return columns
}
