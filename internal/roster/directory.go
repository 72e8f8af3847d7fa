// Package roster holds the event attendee directory: a flat mapping of
// credential (cédula or correo) to display name, loaded from a local JSON
// file with an embedded fallback. It is the sole authentication source.
package roster

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/ttradingco/eventbot/internal/common"
)

// seed is used when the JSON roster is absent or malformed. Both identifier
// shapes may key to the same attendee.
var seed = map[string]string{
	"75106729":          "Daniel Mejia Sanchez",
	"furolol@gmail.com": "Daniel Mejia Sanchez",
}

// Entry is the result of a successful lookup. Cedula and Correo carry the
// matched identifier plus, when present in the directory, the complementary
// identifier of the other shape registered under the same name.
type Entry struct {
	Name   string
	Cedula string
	Correo string
}

// Directory answers credential lookups. Immutable after Load; safe for
// concurrent readers.
type Directory struct {
	entries map[string]string
}

// Load builds a Directory from the JSON object at path (keys = identifiers,
// values = display names). An unreadable file, invalid JSON, or a non-string
// value silently falls back to the embedded seed: a broken roster file must
// not take the bot down.
func Load(path string) *Directory {
	d := &Directory{entries: make(map[string]string, len(seed))}

	raw, err := os.ReadFile(path)
	if err == nil {
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err == nil {
			for k, v := range m {
				d.entries[Normalize(k)] = v
			}
			return d
		}
	}

	for k, v := range seed {
		d.entries[Normalize(k)] = v
	}
	return d
}

// Normalize applies the canonical identifier form used for all matching:
// surrounding whitespace stripped and lower-cased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsCorreo reports whether the identifier is email-shaped.
func IsCorreo(s string) bool {
	return strings.Contains(s, "@")
}

// IsCedula reports whether the identifier is a numeric ID after stripping
// the separators people habitually type ("1.234.567", "1 234 567").
func IsCedula(s string) bool {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Lookup finds the entry for an identifier. On a hit it reverse-scans the
// directory for other identifiers registered under the same display name to
// recover the complementary shape (a cédula when the input was a correo and
// vice versa), stopping as soon as both are known. Matching is exact on the
// normalized string; there is no fuzzy matching.
func (d *Directory) Lookup(identifier string) (Entry, error) {
	key := Normalize(identifier)
	name, ok := d.entries[key]
	if !ok {
		return Entry{}, common.ErrNotFound
	}

	e := Entry{Name: name}
	if IsCedula(key) {
		e.Cedula = key
	}
	if IsCorreo(key) {
		e.Correo = key
	}
	for k, v := range d.entries {
		if v != name {
			continue
		}
		if e.Cedula == "" && IsCedula(k) {
			e.Cedula = k
		}
		if e.Correo == "" && IsCorreo(k) {
			e.Correo = k
		}
		if e.Cedula != "" && e.Correo != "" {
			break
		}
	}
	return e, nil
}

// Len reports the number of loaded entries.
func (d *Directory) Len() int { return len(d.entries) }
