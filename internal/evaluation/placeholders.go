// File: internal/evaluation/placeholders.go
package evaluation

import "strings"

// Placeholders extracts the {name}-style placeholders from a prompt with a
// single left-to-right scan: each non-empty substring between a '{' and the
// nearest following '}' is a placeholder name. There is no nesting and no
// escape for literal braces; downstream prompts rely on exactly this
// behavior, so it must not be "improved". Duplicates collapse to one entry
// and first-appearance order is preserved.
func Placeholders(prompt string) []string {
	var names []string
	seen := make(map[string]struct{})

	for i := 0; i < len(prompt); i++ {
		if prompt[i] != '{' {
			continue
		}
		end := strings.IndexByte(prompt[i+1:], '}')
		if end < 0 {
			break
		}
		if end > 0 {
			name := prompt[i+1 : i+1+end]
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
		i += end + 1
	}
	return names
}
