/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package notify is the seam for user-facing outcome messages. The pipeline
// emits (message, severity) events; where they end up is the caller's
// business, the default sink is the structured log.
package notify

import "log/slog"

// Severity ranks a notification.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Notifier receives outcome messages.
type Notifier interface {
	Notify(msg string, sev Severity)
}

// Func adapts a function to the Notifier interface.
type Func func(msg string, sev Severity)

func (f Func) Notify(msg string, sev Severity) { f(msg, sev) }

// Log returns a notifier writing through l at a level matching the
// severity.
func Log(l *slog.Logger) Notifier { return logNotifier{l: l} }

type logNotifier struct{ l *slog.Logger }

func (n logNotifier) Notify(msg string, sev Severity) {
	switch sev {
	case Error:
		n.l.Error(msg)
	case Warning:
		n.l.Warn(msg)
	case Success:
		n.l.Info(msg, "outcome", "success")
	default:
		n.l.Info(msg)
	}
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(string, Severity) {}
