// Copyright 2015-2017 Piprate Limited
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

package jsonld

import "github.com/sirupsen/logrus"

// LogWarningSink routes Warnings through a logrus.Entry at Warn level,
// matching the way HTTPDocumentLoader reports cache and fetch conditions.
type LogWarningSink struct {
	log *logrus.Entry
}

// NewLogWarningSink builds a sink logging through log, or a fresh
// "component":"jsonld" entry if log is nil.
func NewLogWarningSink(log *logrus.Entry) *LogWarningSink {
	if log == nil {
		log = logrus.WithField("component", "jsonld")
	}
	return &LogWarningSink{log: log}
}

// Warn implements WarningSink.
func (s *LogWarningSink) Warn(w Warning) {
	entry := s.log.WithField("kind", string(w.Kind))
	if w.Term != "" {
		entry = entry.WithField("term", w.Term)
	}
	if w.Value != nil {
		entry = entry.WithField("value", w.Value)
	}
	entry.Warn("jsonld: non-fatal processing condition")
}

// CollectingWarningSink accumulates Warnings in memory instead of logging
// them, for callers (and tests) that want to inspect what was found after
// a call completes.
type CollectingWarningSink struct {
	Warnings []Warning
}

// Warn implements WarningSink.
func (s *CollectingWarningSink) Warn(w Warning) {
	s.Warnings = append(s.Warnings, w)
}
