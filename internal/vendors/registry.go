package vendors

import "strings"

// Vendor pairs a supplier's printed name with its Iscala short code.
type Vendor struct {
	Name string // substring searched for in the document text
	Code string // canonical supplier code used by the accounting load
}

// Registry resolves document text to a supplier identity by ordered
// substring match. Order is priority: the most specific names come first
// because some supplier names contain others. No match is a normal outcome
// and resolves to the empty identity.
type Registry struct {
	vendors []Vendor
}

func NewRegistry(vendors []Vendor) *Registry {
	return &Registry{vendors: vendors}
}

// Resolve returns the first vendor whose name appears in the uppercased
// text, or a zero Vendor when none matches.
func (r *Registry) Resolve(text string) Vendor {
	up := strings.ToUpper(text)
	for _, v := range r.vendors {
		if strings.Contains(up, strings.ToUpper(v.Name)) {
			return v
		}
	}
	return Vendor{}
}

// CodeFor maps a resolved supplier name to its code, tolerating partial
// names (the name only has to contain a registered name).
func (r *Registry) CodeFor(name string) string {
	for _, v := range r.vendors {
		if strings.Contains(name, v.Name) {
			return v.Code
		}
	}
	return ""
}

// Append registers an additional vendor at the end of the priority order.
// The registry is append-only: new suppliers never reorder existing rules.
func (r *Registry) Append(v Vendor) {
	r.vendors = append(r.vendors, v)
}

// Names returns the registered supplier names in priority order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.vendors))
	for i, v := range r.vendors {
		out[i] = v.Name
	}
	return out
}
