package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/repath"
	"github.com/shibukawa/repath/highlight"
	"github.com/shibukawa/repath/pattern"
)

func testSession(t *testing.T) *session {
	t.Helper()

	sess, err := newSession(&Context{Config: filepath.Join(t.TempDir(), "absent.yaml"), Color: "never"})
	assert.NoError(t, err)

	return sess
}

func TestNewSessionColorOverride(t *testing.T) {
	sess := testSession(t)
	assert.Equal(t, highlight.ColorNever, sess.mode)

	// An unset flag falls back to the configured policy.
	sess2, err := newSession(&Context{Config: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.NoError(t, err)
	assert.Equal(t, highlight.ColorAuto, sess2.mode)
}

func TestRewrite(t *testing.T) {
	sess := testSession(t)

	rw, err := newRewriter(sess, "_{f|t}", &PatternFlags{})
	assert.NoError(t, err)

	out, err := rw.rewrite("dir/ file.txt ")
	assert.NoError(t, err)
	assert.Equal(t, "_file.txt", out)
}

func TestRewriteCounters(t *testing.T) {
	sess := testSession(t)

	rw, err := newRewriter(sess, "{c}_{C}", &PatternFlags{
		LocalCounter:  "0:2",
		GlobalCounter: "100:10",
	})
	assert.NoError(t, err)

	inputs := []string{
		filepath.Join("a", "x.txt"),
		filepath.Join("b", "y.txt"),
		filepath.Join("a", "z.txt"),
	}

	var outputs []string
	for _, input := range inputs {
		out, rerr := rw.rewrite(input)
		assert.NoError(t, rerr)
		outputs = append(outputs, out)
	}

	assert.Equal(t, []string{"0_100", "0_110", "2_120"}, outputs)
}

func TestRewriteCaptureGroups(t *testing.T) {
	sess := testSession(t)

	rw, err := newRewriter(sess, "{2}-{1}", &PatternFlags{Regex: `(\w+)\.(\w+)`})
	assert.NoError(t, err)

	out, err := rw.rewrite("beach.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "jpg-beach", out)
}

func TestRewriteUnmatchedRegexLeavesGroupsEmpty(t *testing.T) {
	sess := testSession(t)

	rw, err := newRewriter(sess, "{1}", &PatternFlags{Regex: `([0-9]+)`})
	assert.NoError(t, err)

	_, err = rw.rewrite("no-digits")
	assert.IsError(t, err, pattern.ErrCaptureGroupOverflow)
}

func TestNewRewriterRequiresRegexForCaptureGroups(t *testing.T) {
	sess := testSession(t)

	_, err := newRewriter(sess, "{1}", &PatternFlags{})
	assert.IsError(t, err, ErrRegexRequired)
}

func TestNewRewriterEscapeOverride(t *testing.T) {
	sess := testSession(t)

	rw, err := newRewriter(sess, "%{left%}{f}", &PatternFlags{Escape: "%"})
	assert.NoError(t, err)

	out, err := rw.rewrite("a/b.txt")
	assert.NoError(t, err)
	assert.Equal(t, "{left}b.txt", out)

	_, err = newRewriter(sess, "{f}", &PatternFlags{Escape: "%%"})
	assert.IsError(t, err, repath.ErrConfigValidation)
}

func TestNewRewriterBadRegex(t *testing.T) {
	sess := testSession(t)

	_, err := newRewriter(sess, "{f}", &PatternFlags{Regex: "("})
	assert.Error(t, err)
}

func TestNewRewriterBadPatternKeepsSource(t *testing.T) {
	sess := testSession(t)

	_, err := newRewriter(sess, "{f|q}", &PatternFlags{})
	assert.IsError(t, err, pattern.ErrUnknownFilter)

	// The printer can still underline the failing range.
	var parseErr *pattern.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "{f|q}", parseErr.Source)
}

func TestForEachInputArguments(t *testing.T) {
	var seen []string

	err := forEachInput([]string{"a", "b"}, false, func(v string) error {
		seen = append(seen, v)

		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
}
