package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/mesocycles/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestNewOutput(t *testing.T) {
	assert.Equal(t, os.Stdout, newOutput(LoggerSetupParams{}))

	fileName := filepath.Join(t.TempDir(), "service")
	out := newOutput(LoggerSetupParams{LogFileName: fileName})
	fileLogger, ok := out.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, fileName+".log", fileLogger.Filename)
	assert.Equal(t, logFileMaxSizeMB, fileLogger.MaxSize)

	out = newOutput(LoggerSetupParams{LogFileName: fileName + ".log", LogToStdout: true})
	_, ok = out.(*pkg.CombinedWriter)
	assert.True(t, ok)
}
