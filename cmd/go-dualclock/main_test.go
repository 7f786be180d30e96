package main

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-dualclock/internal/config"
)

func TestPrintVersion_IncludesBuildInfo(t *testing.T) {
	origVersion, origCommit, origDate := config.Version, config.Commit, config.Date
	t.Cleanup(func() {
		config.Version, config.Commit, config.Date = origVersion, origCommit, origDate
	})

	config.Version = "1.2.3"
	config.Commit = "abc1234"
	config.Date = "2026-10-17"

	var buf bytes.Buffer
	printVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, config.AppName)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "commit abc1234")
	assert.Contains(t, out, "built 2026-10-17")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}
