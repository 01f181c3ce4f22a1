package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voiceforge/voiceforge-go/pkg/cli"
	"github.com/voiceforge/voiceforge-go/pkg/studio"
	"github.com/voiceforge/voiceforge-go/pkg/voiceforge"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Speech generation",
	Long: `Speech generation from cloned voices.

Example request file (speech.yaml):
  voice_model_id: vm-1
  text: Hello, this is my cloned voice.
  speed: 1.0
  pitch: 0
  save_voice: false`,
}

var generateSpeechCmd = &cobra.Command{
	Use:   "speech",
	Short: "Generate speech (blocking)",
	Long: `Generate speech from text in one blocking request.

The voice comes from --model, the context default model, or the
request file. Use -o to download the rendered audio.

Examples:
  voiceforge -c local generate speech -f speech.yaml
  voiceforge -c local generate speech --model vm-1 --text "Hello" -o hello.wav`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		var req voiceforge.SpeechRequest
		if getInputFile() != "" {
			if err := loadRequest(getInputFile(), &req); err != nil {
				return err
			}
		}
		applySpeechFlags(cmd, &req)
		if req.VoiceModelID == "" && req.AudioID == "" {
			req.VoiceModelID = ctx.DefaultModel
		}
		if req.VoiceModelID == "" && req.AudioID == "" {
			return fmt.Errorf("voice model is required, use --model flag or a request file")
		}
		if strings.TrimSpace(req.Text) == "" {
			return fmt.Errorf("text is required, use --text flag or a request file")
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Text length: %d characters", len(req.Text))

		client := createClient(ctx)

		resp, err := client.Generate.Speech(context.Background(), &req)
		if err != nil {
			return fmt.Errorf("speech generation failed: %w", err)
		}

		printSuccess("Speech generated (%s)", cli.FormatSeconds(resp.DurationSeconds))

		outputPath := getOutputFile()
		if outputPath != "" {
			rc, err := client.Generate.Download(context.Background(), voiceforge.OutputID(resp.AudioURL))
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			n, err := saveStream(rc, outputPath)
			if err != nil {
				return err
			}
			printSuccess("Audio saved to: %s (%s)", outputPath, cli.FormatBytes(n))
		}

		result := map[string]any{
			"audio_url":        client.AbsoluteURL(resp.AudioURL),
			"duration_seconds": resp.DurationSeconds,
		}
		if resp.VoiceModelID != "" {
			result["voice_model_id"] = resp.VoiceModelID
		}
		if outputPath != "" {
			result["output_file"] = outputPath
		}

		return outputResult(result, "", isJSONOutput())
	},
}

var generateStreamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Generate speech with live progress",
	Long: `Generate speech, rendering progress as it streams from the server.

The command drives a studio pipeline: the voice is bound from the
library, progress folds into the pipeline state, and the final result
URL is taken from the last event carrying one.

Examples:
  voiceforge -c local generate stream --model vm-1 --text "Hello there"
  voiceforge -c local generate stream --model vm-1 -f script.txt -o out.wav`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		modelID, _ := cmd.Flags().GetString("model")
		if modelID == "" {
			modelID = ctx.DefaultModel
		}
		if modelID == "" {
			return fmt.Errorf("voice model is required, use --model flag")
		}

		text, _ := cmd.Flags().GetString("text")
		if text == "" && getInputFile() != "" {
			data, err := os.ReadFile(getInputFile())
			if err != nil {
				return fmt.Errorf("read script file: %w", err)
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("text is required, use --text flag or -f script file")
		}

		speed, _ := cmd.Flags().GetFloat64("speed")
		pitch, _ := cmd.Flags().GetFloat64("pitch")

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Voice model: %s", modelID)

		client := createClient(ctx)
		pipe := studio.New(client)

		if err := pipe.RefreshModels(context.Background()); err != nil {
			return fmt.Errorf("refresh voice library failed: %w", err)
		}
		if err := pipe.UseModel(modelID); err != nil {
			return err
		}
		pipe.SetScript(text)
		pipe.SetSpeed(speed)
		pipe.SetPitch(pitch)

		bar := cli.NewProgressBar(os.Stderr)
		done := make(chan error, 1)
		go func() { done <- pipe.Generate(context.Background()) }()

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for running := true; running; {
			select {
			case err = <-done:
				running = false
			case <-ticker.C:
				s := pipe.Snapshot()
				bar.Update(s.TargetID, s.Progress, s.ProgressMessage)
			}
		}

		s := pipe.Snapshot()
		if err != nil {
			bar.Fail(err.Error())
			bar.Done()
			return err
		}
		bar.Update(studio.TargetOutput, s.Progress, s.ProgressMessage)
		bar.Done()

		if s.ResultURL == "" {
			return fmt.Errorf("stream ended without a result")
		}

		outputPath := getOutputFile()
		if outputPath != "" {
			rc, err := client.Generate.Download(context.Background(), voiceforge.OutputID(s.ResultURL))
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			n, err := saveStream(rc, outputPath)
			if err != nil {
				return err
			}
			printSuccess("Audio saved to: %s (%s)", outputPath, cli.FormatBytes(n))
		}

		result := map[string]any{
			"audio_url":        s.ResultURL,
			"duration_seconds": s.ResultDuration,
		}
		if outputPath != "" {
			result["output_file"] = outputPath
		}

		return outputResult(result, "", isJSONOutput())
	},
}

var generateDownloadCmd = &cobra.Command{
	Use:   "download <output_id>",
	Short: "Download generated audio",
	Long: `Download a previously generated audio output.

Examples:
  voiceforge -c local generate download abc123 -o speech.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputID := args[0]

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for audio download, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)

		rc, err := client.Generate.Download(context.Background(), outputID)
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

// applySpeechFlags overlays command flags onto a request loaded from file.
func applySpeechFlags(cmd *cobra.Command, req *voiceforge.SpeechRequest) {
	if modelID, _ := cmd.Flags().GetString("model"); modelID != "" {
		req.VoiceModelID = modelID
	}
	if audioID, _ := cmd.Flags().GetString("audio"); audioID != "" {
		req.AudioID = audioID
	}
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		req.Text = text
	}
	if cmd.Flags().Changed("speed") {
		req.Speed, _ = cmd.Flags().GetFloat64("speed")
	}
	if cmd.Flags().Changed("pitch") {
		req.Pitch, _ = cmd.Flags().GetFloat64("pitch")
	}
	if cmd.Flags().Changed("save-voice") {
		req.SaveVoice, _ = cmd.Flags().GetBool("save-voice")
	}
	if voiceName, _ := cmd.Flags().GetString("voice-name"); voiceName != "" {
		req.VoiceName = voiceName
	}
}

func init() {
	generateSpeechCmd.Flags().String("model", "", "Voice model ID")
	generateSpeechCmd.Flags().String("audio", "", "Uploaded recording handle (one-shot voice)")
	generateSpeechCmd.Flags().String("text", "", "Text to synthesize")
	generateSpeechCmd.Flags().Float64("speed", 1.0, "Speaking speed (0.5 to 2.0)")
	generateSpeechCmd.Flags().Float64("pitch", 0, "Pitch shift in semitones (-12 to +12)")
	generateSpeechCmd.Flags().Bool("save-voice", false, "Persist the one-shot voice as a model")
	generateSpeechCmd.Flags().String("voice-name", "", "Name for the persisted voice")

	generateStreamCmd.Flags().String("model", "", "Voice model ID")
	generateStreamCmd.Flags().String("text", "", "Text to synthesize")
	generateStreamCmd.Flags().Float64("speed", 1.0, "Speaking speed (0.5 to 2.0)")
	generateStreamCmd.Flags().Float64("pitch", 0, "Pitch shift in semitones (-12 to +12)")

	generateCmd.AddCommand(generateSpeechCmd)
	generateCmd.AddCommand(generateStreamCmd)
	generateCmd.AddCommand(generateDownloadCmd)
}
