// Package domain holds the error vocabulary shared by every layer: sentinel
// errors for errors.Is checks and ValidationError for field-level failures.
// The conversion itself lives in the numeral sub-package.
package domain
