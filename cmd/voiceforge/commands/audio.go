package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voiceforge/voiceforge-go/pkg/cli"
)

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Reference recording management",
	Long: `Reference recording management.

Upload recordings for voice cloning and download processed audio.
A recording should be at least 30 seconds of clean speech for
accurate cloning.`,
}

var audioUploadCmd = &cobra.Command{
	Use:   "upload <audio_file>",
	Short: "Upload a reference recording",
	Long: `Upload a reference recording for voice cloning.

The server converts, resamples and denoises the recording and judges
whether it is usable. An unusable recording is still stored; the
validation verdict is part of the result.

Examples:
  voiceforge -c local audio upload recording.wav
  voiceforge -c local audio upload recording.wav --json --query .id`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		ctx, err := getContext()
		if err != nil {
			return err
		}

		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat file: %w", err)
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("File: %s (%s)", filePath, cli.FormatBytes(info.Size()))

		client := createClient(ctx)

		sample, err := client.Audio.Upload(context.Background(), file, info.Name())
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}

		if sample.IsValid {
			printSuccess("Recording uploaded: %s (%s)", sample.ID, cli.FormatSeconds(sample.DurationSeconds))
		} else {
			cli.PrintWarning("Recording unusable: %s", sample.Message)
		}

		return outputResult(sample, getOutputFile(), isJSONOutput())
	},
}

var audioDownloadCmd = &cobra.Command{
	Use:   "download <audio_id>",
	Short: "Download a processed recording",
	Long: `Download the processed version of an uploaded recording.

Examples:
  voiceforge -c local audio download a-1 -o processed.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audioID := args[0]

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for audio download, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Downloading audio: %s", audioID)

		client := createClient(ctx)

		rc, err := client.Audio.Download(context.Background(), audioID)
		if err != nil {
			return fmt.Errorf("download failed: %w", err)
		}

		n, err := saveStream(rc, outputPath)
		if err != nil {
			return err
		}

		printSuccess("Audio saved to: %s (%s)", outputPath, cli.FormatBytes(n))
		return nil
	},
}

var audioInfoCmd = &cobra.Command{
	Use:   "info <audio_id>",
	Short: "Show metadata for an uploaded recording",
	Long: `Show the stored metadata for an uploaded recording, including the
validation verdict.

Examples:
  voiceforge -c local audio info a-1
  voiceforge -c local audio info a-1 --json --query .duration_seconds`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audioID := args[0]

		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)

		info, err := client.Audio.Info(context.Background(), audioID)
		if err != nil {
			return fmt.Errorf("failed to get audio info: %w", err)
		}

		return outputResult(info, getOutputFile(), isJSONOutput())
	},
}

var audioDeleteCmd = &cobra.Command{
	Use:   "delete <audio_id>",
	Short: "Delete an uploaded recording",
	Long: `Delete an uploaded recording from the server.

Voice models already cloned from the recording are unaffected.

Examples:
  voiceforge -c local audio delete a-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audioID := args[0]

		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)

		if err := client.Audio.Delete(context.Background(), audioID); err != nil {
			return fmt.Errorf("failed to delete audio: %w", err)
		}

		printSuccess("Recording deleted: %s", audioID)
		return nil
	},
}

func init() {
	audioCmd.AddCommand(audioUploadCmd)
	audioCmd.AddCommand(audioDownloadCmd)
	audioCmd.AddCommand(audioInfoCmd)
	audioCmd.AddCommand(audioDeleteCmd)
}
