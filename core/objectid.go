package core

// ObjectIDLength is the length of a backend object identifier.
const ObjectIDLength = 24

// IsObjectID reports whether s is syntactically a direct object identifier:
// exactly 24 lowercase hexadecimal characters.
func IsObjectID(s string) bool {
	if len(s) != ObjectIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
