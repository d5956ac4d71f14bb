// export_test.go exports private hooks for white-box testing.
package config

// SetUserHomeDir replaces the home directory lookup and returns a restore func.
func SetUserHomeDir(fn func() (string, error)) func() {
	prev := userHomeDir
	userHomeDir = fn
	return func() { userHomeDir = prev }
}
