// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package grab

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Log grabs any logging output of the logrus standard logger and feeds it into
// the specified writer. Preferably, this writer should be a GinkgoWriter, so
// log output will show up only in case a test fails, but otherwise we stay
// silent. Log returns a function that must be deferred in order to restore the
// original output and level of the standard logger.
func Log(w io.Writer, level log.Level) func() {
	std := log.StandardLogger()
	origOut := std.Out
	origLevel := std.GetLevel()
	std.SetOutput(w)
	std.SetLevel(level)
	return func() {
		std.SetOutput(origOut)
		std.SetLevel(origLevel)
	}
}

// Logger returns a new, separate logger writing into the specified writer,
// using a plain text format without timestamps that is easy to match in
// tests.
func Logger(w io.Writer, level log.Level) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return logger
}
