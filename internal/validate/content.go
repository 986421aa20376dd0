// content.go implements sentence content validation.
//
// Separated because content validation is intentionally minimal - sentences
// can contain any UTF-8 text. Only size is checked, to keep the SQLite
// database from accumulating accidental paste disasters.

package validate

// Content validates sentence content size.
//
// Validation rules:
//   - Max length enforced if maxLen > 0 (0 means no limit)
func Content(content string, maxLen int) error {
	if maxLen > 0 && len(content) > maxLen {
		return ErrContentTooLarge
	}
	return nil
}
