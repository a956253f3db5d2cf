package domain

// Entry is a single ToK code and its label
type Entry struct {
	Code  string
	Label string
}

// Registry is the ordered set of ToK entries.
// Codes are unique and alphanumeric; order is load/insertion order.
type Registry struct {
	Entries []Entry
}

// Len returns the number of entries
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// IndexOf returns the position of code, or -1 when absent (exact, case-sensitive)
func (r *Registry) IndexOf(code string) int {
	if r == nil {
		return -1
	}
	for i, e := range r.Entries {
		if e.Code == code {
			return i
		}
	}
	return -1
}

// Lookup returns the entry for code
func (r *Registry) Lookup(code string) (Entry, bool) {
	i := r.IndexOf(code)
	if i < 0 {
		return Entry{}, false
	}
	return r.Entries[i], true
}

// Has reports whether code exists
func (r *Registry) Has(code string) bool {
	return r.IndexOf(code) >= 0
}

// Codes returns all codes in order
func (r *Registry) Codes() []string {
	codes := make([]string, 0, r.Len())
	for _, e := range r.entries() {
		codes = append(codes, e.Code)
	}
	return codes
}

// Clone returns a deep copy
func (r *Registry) Clone() *Registry {
	out := &Registry{Entries: make([]Entry, len(r.entries()))}
	copy(out.Entries, r.entries())
	return out
}

// Check verifies the registry invariants
func (r *Registry) Check() error {
	seen := make(map[string]bool, r.Len())
	for _, e := range r.entries() {
		if !ValidCode(e.Code) {
			return &InvalidCodeError{Code: e.Code}
		}
		if seen[e.Code] {
			return &DuplicateCodeError{Code: e.Code}
		}
		seen[e.Code] = true
	}
	return nil
}

// WithAdded returns a copy with a new entry appended
func (r *Registry) WithAdded(code, label string) (*Registry, error) {
	if !ValidCode(code) {
		return nil, &InvalidCodeError{Code: code}
	}
	if r.Has(code) {
		return nil, &DuplicateCodeError{Code: code}
	}
	out := r.Clone()
	out.Entries = append(out.Entries, Entry{Code: code, Label: label})
	return out, nil
}

// WithCode returns a copy where oldCode is replaced by newCode.
// Renaming a code to itself is allowed.
func (r *Registry) WithCode(oldCode, newCode string) (*Registry, error) {
	if !ValidCode(newCode) {
		return nil, &InvalidCodeError{Code: newCode}
	}
	i := r.IndexOf(oldCode)
	if i < 0 {
		return nil, &NotFoundError{Kind: "code", Key: oldCode}
	}
	if j := r.IndexOf(newCode); j >= 0 && j != i {
		return nil, &DuplicateCodeError{Code: newCode}
	}
	out := r.Clone()
	out.Entries[i].Code = newCode
	return out, nil
}

// WithLabel returns a copy where the label of code is replaced
func (r *Registry) WithLabel(code, label string) (*Registry, error) {
	if !ValidCode(code) {
		return nil, &InvalidCodeError{Code: code}
	}
	i := r.IndexOf(code)
	if i < 0 {
		return nil, &NotFoundError{Kind: "code", Key: code}
	}
	out := r.Clone()
	out.Entries[i].Label = label
	return out, nil
}

// Without returns a copy with code removed
func (r *Registry) Without(code string) (*Registry, error) {
	if !ValidCode(code) {
		return nil, &InvalidCodeError{Code: code}
	}
	i := r.IndexOf(code)
	if i < 0 {
		return nil, &NotFoundError{Kind: "code", Key: code}
	}
	out := &Registry{Entries: make([]Entry, 0, r.Len()-1)}
	out.Entries = append(out.Entries, r.Entries[:i]...)
	out.Entries = append(out.Entries, r.Entries[i+1:]...)
	return out, nil
}

func (r *Registry) entries() []Entry {
	if r == nil {
		return nil
	}
	return r.Entries
}
