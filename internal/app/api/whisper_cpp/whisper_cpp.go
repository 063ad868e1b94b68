package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"stt-frontend/internal/app/audio"
)

// LocalTranscriber implements local transcription, using the whisper.cpp binary.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	language   string
	logger     *zap.Logger
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(binaryPath, modelPath string, logger *zap.Logger) *LocalTranscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		language:   "auto",
		logger:     logger.Named("whisper_cpp"),
	}
}

// Transcript runs whisper.cpp on inputFilePath, converting it to 16 kHz WAV
// first when needed, and returns the text it wrote.
func (lt *LocalTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	lt.logger.Info("Starting transcription", zap.String("file", inputFilePath))

	is16kHzWav, err := audio.Is16kHzWavFile(inputFilePath)
	if err != nil {
		return "", fmt.Errorf("error checking input file: %w", err)
	}
	if !is16kHzWav {
		lt.logger.Debug("Input is not 16kHz WAV, converting")
		inputFilePath, err = audio.ConvertTo16kHzWav(ctx, inputFilePath)
		if err != nil {
			return "", fmt.Errorf("error converting input file: %w", err)
		}
	}

	outDir, err := os.MkdirTemp("", "whisper-cpp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)
	outputFile := filepath.Join(outDir, "transcript")

	args := []string{
		"-m", lt.modelPath,
		"-l", lt.language,
		"-nt",
		"-otxt",
		"-f", inputFilePath,
		"-of", outputFile,
	}

	command := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	lt.logger.Debug("Running transcription command",
		zap.String("binary", lt.binaryPath),
		zap.Strings("args", args),
	)

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("command execution error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	output, err := os.ReadFile(outputFile + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read output file: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
