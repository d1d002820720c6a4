// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactla/report"
)

func TestLoggerSatisfiesObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	var obs report.Observer = logger
	done := report.Span(obs, "rank", "p", 7)
	done("ok")

	out := buf.String()
	require.Contains(t, out, "rank start")
	require.Contains(t, out, "rank done")
	require.Contains(t, out, "status=ok")
}

func TestOrNop(t *testing.T) {
	require.Equal(t, report.Nop, report.OrNop(nil))

	var buf bytes.Buffer
	logger := log.New(&buf)
	require.Equal(t, report.Observer(logger), report.OrNop(logger))

	// Nop must be callable without side effects
	report.Nop.Error("ignored", "k", 1)
	report.Span(nil, "quiet")("ok")
}
