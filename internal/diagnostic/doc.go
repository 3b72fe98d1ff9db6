// Package diagnostic collects coded findings about registered types:
// which keys a type can take in, which it can give back, and why a
// conversion is bound to fail before it is attempted.
package diagnostic
