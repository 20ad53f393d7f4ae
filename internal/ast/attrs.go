package ast

// Attributes is a name-to-value mapping whose insertion order is not
// significant; SortedKeys always returns keys in code-point order so that
// every caller (serializer, matcher, tests) observes the same canonical
// order.
type Attributes map[string]any

// SortedKeys returns the attribute keys in code-point-sorted order. Small
// attribute lists are the common case, so this uses an insertion sort
// (sortNames, below; the serializer emits attributes in this order)
// rather than sort.Strings's interface-dispatch overhead.
func (a Attributes) SortedKeys() []string {
	if len(a) == 0 {
		return nil
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sortNames(keys)
	return keys
}

// sortNames sorts small string slices in place with insertion sort.
func sortNames(s []string) {
	for i := 1; i < len(s); i++ {
		key := s[i]
		j := i - 1
		for j >= 0 && s[j] > key {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = key
	}
}

// Clone returns a shallow copy of a. A nil receiver clones to nil.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Equal reports whether a and b hold the same keys mapped to
// value-equal AttributeValues.
func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !ValueEqual(v, bv) {
			return false
		}
	}
	return true
}

// IsSupersetOf reports whether a contains every key of pattern mapped to
// an equal value; keys pattern omits are unconstrained (§4.4: "attribute
// omission matches any value").
func (a Attributes) IsSupersetOf(pattern Attributes) bool {
	for k, v := range pattern {
		av, ok := a[k]
		if !ok || !ValueEqual(av, v) {
			return false
		}
	}
	return true
}

// ValueEqual reports whether two AttributeValues (string, int64, float64,
// bool, nil, []any, or map[string]any) are deeply equal.
func ValueEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case int64:
		switch bv := b.(type) {
		case int64:
			return av == bv
		case float64:
			return float64(av) == bv
		}
		return false
	case float64:
		switch bv := b.(type) {
		case float64:
			return av == bv
		case int64:
			return av == float64(bv)
		}
		return false
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, ok := bv[k]
			if !ok || !ValueEqual(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
