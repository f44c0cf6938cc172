package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// Resolver maps key strings to command lines.
type Resolver struct {
	bindings  map[string]string   // key -> command
	byCommand map[string][]string // command -> keys (for help/documentation)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings:  make(map[string]string),
		byCommand: make(map[string][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Command
		}
	}
	r.reindex()
	return r
}

// Bind binds key to command, replacing any previous binding. Keys may be
// written as "<Left>" or "left". An empty command unbinds the key.
func (r *Resolver) Bind(key, command string) error {
	key = NormalizeKey(key)
	if key == "" {
		return fmt.Errorf("empty key for %q", command)
	}
	command = strings.TrimSpace(command)
	if command == "" {
		delete(r.bindings, key)
		r.reindex()
		return nil
	}
	if _, err := Parse(command); err != nil {
		return fmt.Errorf("bind %s: %w", key, err)
	}
	r.bindings[key] = command
	r.reindex()
	return nil
}

// BindAll applies a key -> command table, as read from config. Invalid
// entries are skipped and returned as one error.
func (r *Resolver) BindAll(binds map[string]string) error {
	keys := make([]string, 0, len(binds))
	for k := range binds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []string
	for _, k := range keys {
		if err := r.Bind(k, binds[k]); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid binds: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Resolve returns the command for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) string {
	return r.bindings[key]
}

// IsPrefix reports whether keys starts a longer bound sequence.
func (r *Resolver) IsPrefix(keys string) bool {
	prefix := keys + " "
	for key := range r.bindings {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// KeysFor returns the keys bound to a command (for help/documentation).
func (r *Resolver) KeysFor(command string) []string {
	return r.byCommand[command]
}

// Commands returns every bound command line, sorted.
func (r *Resolver) Commands() []string {
	cmds := make([]string, 0, len(r.byCommand))
	for cmd := range r.byCommand {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

func (r *Resolver) reindex() {
	r.byCommand = make(map[string][]string, len(r.bindings))
	for key, cmd := range r.bindings {
		r.byCommand[cmd] = append(r.byCommand[cmd], key)
	}
	for _, keys := range r.byCommand {
		sort.Strings(keys)
	}
}

// NormalizeKey converts "<Shift+Left>" style names to the lower-case
// names the terminal reports ("shift+left"). Single characters keep
// their case; "space" becomes " ". Each key of a sequence such as
// "g <Home>" is normalized on its own.
func NormalizeKey(key string) string {
	if key != " " && strings.Contains(strings.TrimSpace(key), " ") {
		parts := strings.Fields(key)
		for i, p := range parts {
			parts[i] = normalizeOne(p)
		}
		return strings.Join(parts, " ")
	}
	return normalizeOne(key)
}

func normalizeOne(key string) string {
	if key != " " {
		key = strings.TrimSpace(key)
	}
	if strings.HasPrefix(key, "<") && strings.HasSuffix(key, ">") && len(key) > 2 {
		key = key[1 : len(key)-1]
	}
	if len([]rune(key)) <= 1 {
		return key
	}
	key = strings.ToLower(key)
	if key == "space" {
		return " "
	}
	return key
}
