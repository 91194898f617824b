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

package cloud

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// QuotaAwareModel throttles calls to a wrapped LanguageModel with a token
// bucket. Callers block until a token is free or their context ends. A
// failed call is returned as is; nothing is retried.
type QuotaAwareModel struct {
	LanguageModel
	limiter *rate.Limiter
}

// NewQuotaAwareModel wraps model with a limiter allowing requestsPerSecond
// calls per second (burst of the same size). A non-positive rate returns
// model unchanged.
func NewQuotaAwareModel(model LanguageModel, requestsPerSecond int) LanguageModel {
	if requestsPerSecond <= 0 {
		return model
	}
	return &QuotaAwareModel{
		LanguageModel: model,
		limiter:       rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Complete waits for the limiter and then calls the wrapped model once.
func (q *QuotaAwareModel) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := q.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return q.LanguageModel.Complete(ctx, req)
}
