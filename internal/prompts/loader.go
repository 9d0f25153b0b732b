// Package prompts holds the LLM prompt templates. Each embedded JSON file maps
// a prompt key to a template with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// library is every embedded file, parsed on first use.
var (
	loadOnce sync.Once
	library  map[string]map[string]string
	loadErr  error
)

func load() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		library, loadErr = parseAll(promptFiles)
	})
	return library, loadErr
}

func parseAll(fsys fs.FS) (map[string]map[string]string, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]string, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		var templates map[string]string
		if err := json.Unmarshal(data, &templates); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}
		out[name] = templates
	}
	return out, nil
}

// Get returns the template stored under key in file, e.g. Get("coach.json", "coach-context").
func Get(file, key string) (string, error) {
	lib, err := load()
	if err != nil {
		return "", err
	}
	templates, ok := lib[file]
	if !ok {
		return "", fmt.Errorf("prompt file %s does not exist", file)
	}
	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", key, file)
	}
	return template, nil
}

// MustGet is Get for templates the program cannot run without.
func MustGet(file, key string) string {
	template, err := Get(file, key)
	if err != nil {
		panic(fmt.Sprintf("prompts: %v", err))
	}
	return template
}

// Keys lists the prompt keys of file in sorted order.
func Keys(file string) ([]string, error) {
	lib, err := load()
	if err != nil {
		return nil, err
	}
	templates, ok := lib[file]
	if !ok {
		return nil, fmt.Errorf("prompt file %s does not exist", file)
	}
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Format substitutes {{.Key}} placeholders with values from data in one pass,
// so placeholders inside values are left as written. Unknown placeholders stay.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
