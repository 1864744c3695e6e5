package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/repath/pattern"
	"github.com/shibukawa/repath/textio"
)

func sequence(t *testing.T, spec string, step uint64) []string {
	t.Helper()

	rng, err := pattern.ParseNumberRange(spec)
	assert.NoError(t, err)

	var buf strings.Builder

	w := textio.NewWriter(&buf, false)
	assert.NoError(t, writeSequence(w, rng, step))
	assert.NoError(t, w.Flush())

	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestWriteSequence(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		step     uint64
		expected []string
	}{
		{name: "unit step", spec: "1-5", step: 1, expected: []string{"1", "2", "3", "4", "5"}},
		{name: "from zero", spec: "-3", step: 1, expected: []string{"0", "1", "2", "3"}},
		{name: "step past end", spec: "0-10", step: 4, expected: []string{"0", "4", "8"}},
		{name: "single value", spec: "7-7", step: 2, expected: []string{"7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sequence(t, tt.spec, tt.step))
		})
	}
}

func TestSeqCmdRejectsZeroStep(t *testing.T) {
	cmd := &SeqCmd{Range: "1-5", Step: 0}
	assert.IsError(t, cmd.Run(&Context{}), ErrZeroStep)
}

func TestSeqCmdRejectsUnboundedRange(t *testing.T) {
	cmd := &SeqCmd{Range: "3-", Step: 1}
	assert.IsError(t, cmd.Run(&Context{}), ErrUnboundedSequence)
}

func TestSeqCmdReportsRangeErrors(t *testing.T) {
	cmd := &SeqCmd{Range: "5-2", Step: 1}
	assert.IsError(t, cmd.Run(&Context{}), pattern.ErrRangeStartOverEnd)
}
