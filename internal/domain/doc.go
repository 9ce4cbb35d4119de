// Package domain defines core data models shared across the app.
// It contains plain types (keys, envelopes, session state) and the protocol
// error taxonomy only.
package domain
