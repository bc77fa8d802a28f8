// Package auth issues and verifies session tokens and hashes passwords.
package auth
