package diag_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/wrede/gbmot/diag"
	"github.com/stretchr/testify/require"
)

func TestStdSinkFiltersByThreshold(t *testing.T) {
	var buf bytes.Buffer
	sink := &diag.StdSink{Logger: log.New(&buf, "", 0), Threshold: diag.LevelInfo}

	diag.Infof(sink, "hello %d", 1)
	diag.Debugf(sink, "should not appear")

	require.Contains(t, buf.String(), "hello 1")
	require.NotContains(t, buf.String(), "should not appear")
}

func TestNilSinkNoPanic(t *testing.T) {
	require.NotPanics(t, func() {
		diag.Infof(nil, "noop")
	})
}
