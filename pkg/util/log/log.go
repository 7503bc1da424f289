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

// Package log is a thin logging facade for the rest of the engine. Call
// sites pass a context; tags attached via logtags.AddTag become a bracketed
// prefix on every message. The backing logger is a zap.Logger, a no-op by
// default so that library users opt into output explicitly.
package log

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/logtags"
	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

var verbosity atomic.Int32

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the process-wide logger. Passing nil restores the
// default no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// SetVerbosity sets the level against which V gates.
func SetVerbosity(level int32) {
	verbosity.Store(level)
}

// V returns true if the verbosity is at or above the requested level.
func V(level int32) bool {
	return verbosity.Load() >= level
}

func prefix(ctx context.Context) string {
	if tags := logtags.FromContext(ctx); tags != nil {
		return "[" + tags.String() + "] "
	}
	return ""
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logger.Load().Info(prefix(ctx) + fmt.Sprintf(format, args...))
}

// Warningf logs a formatted message at warning level.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logger.Load().Warn(prefix(ctx) + fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logger.Load().Error(prefix(ctx) + fmt.Sprintf(format, args...))
}

// VEventf logs a formatted message at info level if the verbosity is at or
// above the requested level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		Infof(ctx, format, args...)
	}
}
