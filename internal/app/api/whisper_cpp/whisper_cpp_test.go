package whisper_cpp

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWhisper writes a script that behaves like whisper.cpp: it writes text
// to the path given with -of plus ".txt".
func fakeWhisper(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "whisper-cli")
	script := "#!/bin/sh\n" +
		"out=''\n" +
		"while [ $# -gt 0 ]; do\n" +
		"  if [ \"$1\" = \"-of\" ]; then out=\"$2\"; fi\n" +
		"  shift\n" +
		"done\n" +
		body
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func write16kWav(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 16000},
		Data:           make([]int, 160),
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	return path
}

func TestLocalTranscriber_Transcript(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		want          string
		expectError   bool
		errorContains string
	}{
		{
			name: "reads text output",
			body: "printf ' ask not what your country can do for you \\n' > \"$out.txt\"\n",
			want: "ask not what your country can do for you",
		},
		{
			name:          "binary fails",
			body:          "echo 'failed to load model' >&2\nexit 3\n",
			expectError:   true,
			errorContains: "failed to load model",
		},
		{
			name:          "no output file",
			body:          "exit 0\n",
			expectError:   true,
			errorContains: "failed to read output file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lt := NewLocalTranscriber(fakeWhisper(t, tt.body), "model.bin", nil)

			got, err := lt.Transcript(context.Background(), write16kWav(t))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalTranscriber_MissingInput(t *testing.T) {
	lt := NewLocalTranscriber("whisper-cli", "model.bin", nil)
	_, err := lt.Transcript(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
