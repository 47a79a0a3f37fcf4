package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmdDownloadNoInput(t *testing.T) {
	cmd := cmdDownload()
	cmd.SetArgs([]string{})
	assert.EqualError(t, cmd.Execute(), "no tracks, albums or playlists supplied")
}

func TestCmdDownloadRejectsArgs(t *testing.T) {
	cmd := cmdDownload()
	cmd.SetArgs([]string{"positional"})
	assert.Error(t, cmd.Execute())
}
