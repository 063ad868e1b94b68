package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

// WhisperSampleRate is the only sample rate whisper.cpp accepts.
const WhisperSampleRate = 16000

// Is16kHzWavFile reports whether filePath is a 16-bit PCM WAV file sampled at
// 16 kHz.
func Is16kHzWavFile(filePath string) (bool, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return false, nil
	}
	return dec.SampleRate == WhisperSampleRate && dec.BitDepth == 16 && dec.WavAudioFormat == 1, nil
}

// ConvertTo16kHzWav converts inputFilePath with ffmpeg and returns the path of
// the 16 kHz mono WAV written next to it.
func ConvertTo16kHzWav(ctx context.Context, inputFilePath string) (string, error) {
	outputFilePath := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_16khz.wav"
	if err := convertTo16kHzWav(ctx, inputFilePath, outputFilePath); err != nil {
		return "", err
	}
	return outputFilePath, nil
}

func convertTo16kHzWav(ctx context.Context, inputAudioFilePath, outputWavPath string) error {
	if _, err := os.Stat(outputWavPath); err == nil {
		return nil
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-nostdin", "-y",
		"-i", inputAudioFilePath,
		"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1",
		outputWavPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
