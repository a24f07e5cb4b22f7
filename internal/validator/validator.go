package validator

import (
	"sort"
	"strings"
)

// Validator collects field-level error messages. The first message recorded
// for a field wins, so rules can be chained from most to least specific.
type Validator struct {
	Errors map[string]string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no errors were recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for key unless key already has one.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check records message for key when ok is false.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Has reports whether key has a recorded error.
func (v *Validator) Has(key string) bool {
	_, ok := v.Errors[key]
	return ok
}

// Clear drops the error recorded for key.
func (v *Validator) Clear(key string) {
	delete(v.Errors, key)
}

// Fields returns the keys with errors in lexical order.
func (v *Validator) Fields() []string {
	keys := make([]string, 0, len(v.Errors))
	for k := range v.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Error makes a failed Validator usable as an error value.
func (v *Validator) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, k := range v.Fields() {
		parts = append(parts, k+": "+v.Errors[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
