// Package schema checks WordPress records against a JSON Schema.
//
// The usual schema is the one inferred from the first record of a batch, so
// a check reports how far later records drift from the structural sample
// the template generators use.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	invjsonschema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	wpschema "github.com/usestring/wpbridge-mcp/pkg/jsonschema"
	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// Result is the outcome of validating one value.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// RecordIssue lists the violations of one record.
type RecordIssue struct {
	Index  int      `json:"index"`
	Label  string   `json:"label"`
	Errors []string `json:"errors"`
}

// Report summarizes a batch check.
type Report struct {
	Checked int           `json:"checked"`
	Valid   int           `json:"valid"`
	Issues  []RecordIssue `json:"issues,omitempty"`
}

// Validator validates JSON data against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles an inferred record schema.
func NewValidator(schema *invjsonschema.Schema) (*Validator, error) {
	if schema == nil {
		return nil, errors.New("no schema to compile")
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return NewValidatorFromJSON(data)
}

// NewValidatorFromJSON compiles a raw JSON Schema document.
func NewValidatorFromJSON(data []byte) (*Validator, error) {
	var schemaValue any
	if err := json.Unmarshal(data, &schemaValue); err != nil {
		return nil, fmt.Errorf("parsing JSON Schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	// Add the schema as a resource (doc must be valid json value, not io.Reader)
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// ValidateRecord validates one record.
func (v *Validator) ValidateRecord(r record.Record) *Result {
	data, err := json.Marshal(r)
	if err != nil {
		return &Result{Errors: []string{fmt.Sprintf("encoding record: %v", err)}}
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return &Result{Errors: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}
	return v.ValidateValue(value)
}

// ValidateValue validates an already-parsed value against the schema.
func (v *Validator) ValidateValue(value any) *Result {
	if v == nil || v.schema == nil {
		return &Result{Errors: []string{"schema not compiled"}}
	}
	err := v.schema.Validate(value)
	if err == nil {
		return &Result{Valid: true}
	}
	return &Result{Errors: extractValidationErrors(err)}
}

// Check validates every record and reports the ones that fail.
// labelFn names a record in the report; nil uses its position.
func (v *Validator) Check(records []record.Record, labelFn func(int, record.Record) string) *Report {
	report := &Report{Checked: len(records)}
	for i, r := range records {
		res := v.ValidateRecord(r)
		if res.Valid {
			report.Valid++
			continue
		}
		label := fmt.Sprintf("record[%d]", i)
		if labelFn != nil {
			label = labelFn(i, r)
		}
		report.Issues = append(report.Issues, RecordIssue{Index: i, Label: label, Errors: res.Errors})
	}
	return report
}

// CheckAgainstSample infers a schema from the first record and checks the
// whole batch against it. Returns nil for no records.
func CheckAgainstSample(records []record.Record, labelFn func(int, record.Record) string) (*Report, *wpschema.RecordSchema, error) {
	inferred := wpschema.InferRecords(records[:min(1, len(records))], nil)
	if inferred == nil {
		return nil, nil, nil
	}
	v, err := NewValidator(inferred.Schema)
	if err != nil {
		return nil, nil, err
	}
	return v.Check(records, labelFn), inferred, nil
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return extractDetailedErrors(validationErr)
	}
	return []string{err.Error()}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractDetailedErrors flattens a ValidationError into sorted, deduplicated
// "path: message" lines.
func extractDetailedErrors(err *jsonschema.ValidationError) []string {
	errorsByPath := make(map[string][]string)
	collectErrors(err, errorsByPath)

	var result []string
	for path, msgs := range errorsByPath {
		seen := make(map[string]bool)
		for _, msg := range msgs {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}
	sort.Strings(result)
	return result
}

// collectErrors recursively collects leaf errors (those without causes).
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		// $ref and schema reference messages are not useful on their own
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}
