// Copyright 2026 mandelgrid Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mandel

import "fmt"

// ConfigError reports an invalid viewport, resolution, budget or lane
// width. It is returned before any computation starts; no partial output
// is ever produced alongside it.
type ConfigError struct {
	msg string
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return "mandel: invalid configuration: " + e.msg
}

// OverflowError reports an iteration budget that does not fit the grid's
// count type. Counts are never silently truncated to the narrower type;
// the call is rejected instead.
type OverflowError struct {
	// Budget is the requested iteration budget.
	Budget int
	// Max is the largest budget the count type can represent.
	Max uint64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("mandel: iteration budget %d exceeds count type range (max %d)", e.Budget, e.Max)
}
