package profile

// Apply returns a new Data with exactly the leaf addressed by path replaced
// by value. The input is never mutated; callers rely on reference identity of
// the original to detect external profile changes. Addressing a path outside
// the fixed schema returns an UnknownPathError.
func Apply(d *Data, path, value string) (*Data, error) {
	acc, ok := registryIndex[path]
	if !ok {
		return nil, &UnknownPathError{Path: path}
	}

	out := d.Clone()
	acc.set(&out.ApplicantInfo, value)
	return out, nil
}
