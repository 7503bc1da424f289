// Copyright 2025 The Kelda Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package distsqlrun

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ProgressMonitor receives one countdown per row the merge stage processes,
// including rows suppressed by an offset. The host uses the countdowns to
// detect a stage that has run far longer than expected; a non-nil error
// aborts the stage immediately. An abort is cooperative and all-or-nothing:
// the partially populated output is not a valid partial result and must be
// discarded by the caller.
type ProgressMonitor interface {
	Countdown(ctx context.Context) error
}

// ErrStageCanceled is returned by the default progress monitor once the
// stage's context has been canceled.
var ErrStageCanceled = errors.New("merge stage canceled")

// cancelCheckInterval must be a power of two; the default monitor only
// inspects the context once per interval to keep the per-row cost to a
// couple of instructions.
const cancelCheckInterval = 1024

// cancelChecker is the default ProgressMonitor: cooperative cancellation
// driven by the stage's context.
type cancelChecker struct {
	countdowns uint64
}

// NewCancelCheckingMonitor returns a ProgressMonitor that aborts the stage
// with ErrStageCanceled once the context is canceled. It is the monitor
// used when the caller does not supply one.
func NewCancelCheckingMonitor() ProgressMonitor {
	return &cancelChecker{}
}

// Countdown is part of the ProgressMonitor interface.
func (c *cancelChecker) Countdown(ctx context.Context) error {
	if c.countdowns%cancelCheckInterval == 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.WithSecondaryError(ErrStageCanceled, ctxErr)
		}
	}
	c.countdowns++
	return nil
}
