package differ

// Option is a functional option for configuring a Differ.
type Option func(*Differ)

// WithIgnoredFields sets fields to ignore during comparison.
func WithIgnoredFields(fields ...string) Option {
	return func(d *Differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// WithMaxValueLength truncates reported values longer than n bytes.
// Zero disables truncation.
func WithMaxValueLength(n int) Option {
	return func(d *Differ) {
		d.maxValueLen = n
	}
}
