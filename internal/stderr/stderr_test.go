//go:build unix

package stderr

import (
	"fmt"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_LogsLines(t *testing.T) {
	log, hook := test.NewNullLogger()

	c, err := Start(log)
	require.NoError(t, err)

	fmt.Fprintln(os.Stderr, "first line")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprint(os.Stderr, "  second line  \n")
	c.Stop()

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "first line", entries[0].Message)
	assert.Equal(t, "second line", entries[1].Message)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "stderr", entries[0].Data["stream"])
}

func TestCapture_RestoresStderr(t *testing.T) {
	log, hook := test.NewNullLogger()

	c, err := Start(log)
	require.NoError(t, err)
	c.Stop()

	// Written after Stop, so it reaches the real stderr, not the log.
	fmt.Fprintln(os.Stderr, "after stop")
	assert.Empty(t, hook.AllEntries())
}
