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

package audio

import (
	"fmt"
	"strings"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// KeyPrefix starts every valid ElevenLabs API key.
const KeyPrefix = "sk_"

// KeyRing holds the configured API keys; key number n is KeyRing[n-1].
type KeyRing []string

func keyName(n int) string {
	return fmt.Sprintf("%s%d", cloud.EnvElevenLabsKey, n)
}

// Key returns key number n. A number outside 1..cloud.MaxElevenLabsKeys is
// a validation error, a missing or malformed key a configuration error.
func (k KeyRing) Key(n int) (string, error) {
	if n < 1 || n > cloud.MaxElevenLabsKeys {
		return "", model.NewValidationError(fmt.Sprintf("api_key_number must be between 1 and %d", cloud.MaxElevenLabsKeys))
	}
	if n > len(k) || k[n-1] == "" {
		return "", model.NewConfigurationError(keyName(n) + " not found in environment variables")
	}
	if !strings.HasPrefix(k[n-1], KeyPrefix) {
		return "", model.NewConfigurationError(fmt.Sprintf("%s is invalid (should start with '%s')", keyName(n), KeyPrefix))
	}
	return k[n-1], nil
}

// Numbers returns the numbers of the valid keys in increasing order.
func (k KeyRing) Numbers() []int {
	var out []int
	for n := 1; n <= len(k) && n <= cloud.MaxElevenLabsKeys; n++ {
		if _, err := k.Key(n); err == nil {
			out = append(out, n)
		}
	}
	return out
}
