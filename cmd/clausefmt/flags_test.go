package main

import (
	"testing"

	goFlags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/zenizh/go-capturer"
)

func TestParseFlags(t *testing.T) {
	flags, rest, err := ParseFlags([]string{})
	assert.NoError(t, err, "should not return error")
	assert.Empty(t, rest)
	assert.Exactly(t, ".clausefmt.yaml", flags.Config, "flag should have default value")
	assert.Exactly(t, "warning", flags.LogLevel, "flag should have default value")
	assert.False(t, flags.IsSet("indent"))

	flags, rest, err = ParseFlags([]string{"-l", "-i", "2", "--encoding=windows-1252", "-j", "3", "a.txt", "dir"})
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, []string{"a.txt", "dir"}, rest)
	assert.True(t, flags.List, "flag should be specified")
	assert.Exactly(t, 2, flags.Indent, "flag should have this value")
	assert.Exactly(t, "windows-1252", flags.Encoding, "flag should have this value")
	assert.Exactly(t, 3, flags.Jobs, "flag should have this value")
	assert.True(t, flags.IsSet("indent"))
	assert.True(t, flags.IsSet("encoding"))
	assert.True(t, flags.IsSet("jobs"))
	assert.False(t, flags.IsSet("tabs"))
	assert.False(t, flags.IsSet("strict"))

	flags, _, err = ParseFlags([]string{"-wsdt", "-V", "--log-level=debug", "-c", "/cfg/path.yaml"})
	assert.NoError(t, err, "should not return error")
	assert.True(t, flags.Write)
	assert.True(t, flags.Strict)
	assert.True(t, flags.Diff)
	assert.True(t, flags.Tabs)
	assert.True(t, flags.Version)
	assert.Exactly(t, "debug", flags.LogLevel)
	assert.Exactly(t, "/cfg/path.yaml", flags.Config)
	assert.True(t, flags.IsSet("strict"))
	assert.True(t, flags.IsSet("tabs"))

	capturer.CaptureOutput(func() {
		_, _, err = ParseFlags([]string{"--help"})
	})
	assert.True(t, IsErrOfType(err, goFlags.ErrHelp), "should return help error")

	capturer.CaptureOutput(func() {
		_, _, err = ParseFlags([]string{"--bogus"})
	})
	assert.True(t, IsErrOfType(err, goFlags.ErrUnknownFlag), "should return unknown flag error")

	capturer.CaptureOutput(func() {
		_, _, err = ParseFlags([]string{"-i", "many"})
	})
	assert.True(t, IsErrOfType(err, goFlags.ErrMarshal), "should return marshal error")
}

func TestIsErrOfType(t *testing.T) {
	assert.True(t, IsErrOfType(&goFlags.Error{Type: goFlags.ErrUnknown}, goFlags.ErrUnknown))
	assert.False(t, IsErrOfType(&goFlags.Error{Type: goFlags.ErrUnknown}, goFlags.ErrHelp))
	assert.False(t, IsErrOfType(nil, goFlags.ErrHelp))
}
