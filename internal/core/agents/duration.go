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
	"math"
	"strconv"
	"strings"
)

const durationPrefix = "Important: the duration should be approximately "

// DurationPhrase turns a duration in seconds (int, float or numeric string)
// into the sentence given to the model, e.g. 90 becomes
// "Important: the duration should be approximately 1 minute and 30 seconds".
// Fractional seconds are rounded. ok is false when v is not numeric.
func DurationPhrase(v any) (phrase string, ok bool) {
	seconds, ok := toSeconds(v)
	if !ok {
		return "", false
	}
	return durationPrefix + PreciseDelta(int64(math.Round(seconds))), true
}

func toSeconds(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case *int:
		if t == nil {
			return 0, false
		}
		return float64(*t), true
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

var deltaUnits = []struct {
	name    string
	seconds int64
}{
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// PreciseDelta spells out a number of seconds with every non-zero unit,
// the last two joined by "and": 3725 gives "1 hour, 2 minutes and 5 seconds".
func PreciseDelta(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	if seconds == 0 {
		return "0 seconds"
	}

	var parts []string
	for _, u := range deltaUnits {
		n := seconds / u.seconds
		seconds %= u.seconds
		if n == 0 {
			continue
		}
		name := u.name
		if n != 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}
