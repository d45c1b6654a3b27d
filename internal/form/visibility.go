package form

// Visibility tracks masked versus plain display per password-like field.
// Every field starts masked.
type Visibility struct {
	shown map[string]bool
}

// NewVisibility declares the maskable fields.
func NewVisibility(fields ...string) Visibility {
	v := Visibility{shown: make(map[string]bool, len(fields))}
	for _, f := range fields {
		v.shown[f] = false
	}
	return v
}

// Toggle flips the named field and reports its new state. Undeclared
// fields are left alone and report false.
func (v Visibility) Toggle(field string) bool {
	cur, ok := v.shown[field]
	if !ok {
		return false
	}
	v.shown[field] = !cur
	return !cur
}

// Shown reports whether the field is currently rendered in plain text.
func (v Visibility) Shown(field string) bool {
	return v.shown[field]
}

// Maskable reports whether the field was declared as maskable.
func (v Visibility) Maskable(field string) bool {
	_, ok := v.shown[field]
	return ok
}
