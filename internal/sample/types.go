package sample

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/fieldq/internal/record"
)

// DisplayTime is the layout used by the String methods.
const DisplayTime = "2006-01-02 15:04:05"

// Person is a named individual with a date of birth.
type Person struct {
	Name string    `yaml:"name"`
	Age  int       `yaml:"age"`
	Dob  time.Time `yaml:"dob"`
}

func (p Person) String() string {
	return fmt.Sprintf("Name: %s, Age: %d, Dob: %s", p.Name, p.Age, p.Dob.Format(DisplayTime))
}

// Document is an issued document. Expires is nil for documents that never
// expire.
type Document struct {
	Title    string     `yaml:"title"`
	IssuedBy time.Time  `yaml:"issued_by"`
	Expires  *time.Time `yaml:"expires,omitempty"`
}

func (d Document) String() string {
	s := fmt.Sprintf("Title: %s, IssuedBy: %s", d.Title, d.IssuedBy.Format(DisplayTime))
	if d.Expires != nil {
		s += ", Expires: " + d.Expires.Format(DisplayTime)
	}
	return s
}

// Recipe is a dish and its ingredient list.
type Recipe struct {
	Name        string   `yaml:"name"`
	Ingredients []string `yaml:"ingredients"`
}

func (r Recipe) String() string {
	return fmt.Sprintf("%s: { %s }", r.Name, strings.Join(r.Ingredients, ", "))
}

// Field tables for the sample record types.
var (
	PersonSchema = record.MustSchema[Person]("person",
		record.Text("Name", func(p Person) string { return p.Name }),
		record.Number("Age", func(p Person) int { return p.Age }),
		record.Time("Dob", func(p Person) time.Time { return p.Dob }),
	)

	DocumentSchema = record.MustSchema[Document]("document",
		record.Text("Title", func(d Document) string { return d.Title }),
		record.Time("IssuedBy", func(d Document) time.Time { return d.IssuedBy }),
		record.Time("Expires", func(d Document) time.Time { return *d.Expires }).
			WithPresence(func(d Document) bool { return d.Expires != nil }),
	)

	RecipeSchema = record.MustSchema[Recipe]("recipe",
		record.Text("Name", func(r Recipe) string { return r.Name }),
		record.List("Ingredients", func(r Recipe) []string { return r.Ingredients }),
	)
)
