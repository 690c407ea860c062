package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into v and warns about keys v has no field for.
func LoadTOMLFile(path string, v any) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// ParseTOMLWithRecovery decodes a TOML file into a generic map. When the file
// as a whole is invalid, each table is decoded on its own and the ones that
// parse are kept. It fails only when nothing parses.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	if _, err := toml.Decode(string(data), &out); err == nil {
		return out, nil
	}

	var firstErr error
	for _, chunk := range splitTables(string(data)) {
		part := make(map[string]any)
		if _, err := toml.Decode(chunk, &part); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			log.Debugf("Skipping unparsable table in %s: %v", path, err)
			continue
		}
		mergeTables(out, part)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid table in %s: %w", path, firstErr)
	}
	return out, nil
}

// splitTables cuts TOML source before every table header line.
func splitTables(src string) []string {
	var chunks []string
	var cur strings.Builder
	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "[") && cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

func mergeTables(dst, src map[string]any) {
	for k, v := range src {
		srcTable, ok := v.(map[string]any)
		dstTable, exists := dst[k].(map[string]any)
		if ok && exists {
			mergeTables(dstTable, srcTable)
			continue
		}
		dst[k] = v
	}
}

// ExtractSection extracts a specific table from parsed TOML data
func ExtractSection(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// ExtractInt returns an integer value. TOML integers decode as int64.
func ExtractInt(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// ExtractBool returns a bool value, if the key holds one.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	val, ok := data[key].(bool)
	return val, ok
}

// ExtractStrings returns a string array, skipping non-string elements.
func ExtractStrings(data map[string]any, key string) ([]string, bool) {
	raw, ok := data[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
