//go:build !android

package android

// DefaultResolver returns USResolver; there is no JVM off-device.
func DefaultResolver() UnicodeResolver {
	return USResolver
}
