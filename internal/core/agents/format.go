// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agents

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Values maps placeholder names to the values substituted into a template.
type Values map[string]any

// Format substitutes every {name} placeholder of template with the matching
// entry of values. Unknown names and nil values render as the empty string.
// A format spec or conversion after the name ({name:>10}, {name!r}) is
// accepted and ignored. "{{" and "}}" render as literal braces and any
// other brace text is copied unchanged, so Format never fails.
func Format(template string, values Values) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			b.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			b.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				b.WriteString(template[i:])
				return b.String()
			}
			field := template[i+1 : i+1+end]
			name, ok := fieldName(field)
			if !ok {
				b.WriteByte('{')
				i++
				continue
			}
			b.WriteString(render(values[name]))
			i += end + 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// fieldName extracts the identifier at the start of a replacement field.
func fieldName(field string) (string, bool) {
	end := len(field)
	for i, r := range field {
		if r == ':' || r == '!' {
			end = i
			break
		}
		if !isIdentRune(r, i == 0) {
			return "", false
		}
	}
	if end == 0 {
		return "", false
	}
	return field[:end], true
}

func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return !first
	}
	return false
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case *int:
		if t == nil {
			return ""
		}
		return strconv.Itoa(*t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		if isNilPointer(v) {
			return ""
		}
		return t.String()
	}
	if isNilPointer(v) {
		return ""
	}
	return fmt.Sprint(v)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
