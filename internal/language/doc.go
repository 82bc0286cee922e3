// Package language turns stream language tags into readable names for the
// info table.
package language
