// Package structs small generic helpers
package structs

// Ref returns a pointer to a copy of v
func Ref[T any](v T) *T {
	return &v
}
