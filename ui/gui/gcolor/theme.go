package gcolor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"multiverse/ui/gui/gbase"

	"gopkg.in/yaml.v3"
)

var (
	ErrUndefinedVar = errors.New("undefined theme variable")
	ErrVarCycle     = errors.New("theme variable cycle")
)

// Theme maps variable names ("--square-black") to values, which may
// themselves reference other variables
type Theme map[string]string

// themeFile is the on-disk form:
//
//	name: midnight
//	extends: dark
//	variables:
//	  --square-black: "#303030"
//	  --present: var(--accent)
type themeFile struct {
	Name      string            `yaml:"name"`
	Extends   string            `yaml:"extends"`
	Variables map[string]string `yaml:"variables"`
}

func BuiltinTheme(name gbase.ThemeName) Theme {
	src := name.Variables()
	t := make(Theme, len(src))
	for k, v := range src {
		t[k] = v
	}
	return t
}

// ParseTheme reads a YAML theme. Variables are layered over the built-in
// theme named by "extends", light when empty.
func ParseTheme(data []byte) (Theme, string, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parse theme: %w", err)
	}
	t := BuiltinTheme(gbase.ThemeFromString(f.Extends))
	for k, v := range f.Variables {
		if !strings.HasPrefix(k, "--") {
			k = "--" + k
		}
		t[k] = strings.TrimSpace(v)
	}
	return t, f.Name, nil
}

func LoadThemeFile(path string) (Theme, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	t, name, err := ParseTheme(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	if name == "" {
		name = path
	}
	return t, name, nil
}

// Lookup resolves a variable to its final value, following references
func (t Theme) Lookup(name string) (string, error) {
	return t.lookup(name, map[string]bool{})
}

func (t Theme) lookup(name string, seen map[string]bool) (string, error) {
	if seen[name] {
		return "", fmt.Errorf("%w: %s", ErrVarCycle, name)
	}
	seen[name] = true

	val, ok := t[name]
	if !ok || val == "" {
		return "", fmt.Errorf("%w: %s", ErrUndefinedVar, name)
	}
	ref, fallback, isRef := varRef(val)
	if !isRef {
		return val, nil
	}
	out, err := t.lookup(ref, seen)
	if errors.Is(err, ErrUndefinedVar) && fallback != "" {
		return fallback, nil
	}
	return out, err
}

// varRef recognizes "var(--x)", "var(--x, fallback)" and a bare "--x"
func varRef(s string) (name, fallback string, ok bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "--") && !strings.ContainsAny(s, " ()") {
		return s, "", true
	}
	if !strings.HasPrefix(s, "var(") || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	body := s[len("var(") : len(s)-1]
	name, fallback, _ = strings.Cut(body, ",")
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, "--") {
		return "", "", false
	}
	return name, strings.TrimSpace(fallback), true
}
