package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voiceforge/voiceforge-go/pkg/cli"
	"github.com/voiceforge/voiceforge-go/pkg/studio"
)

var podcastCmd = &cobra.Command{
	Use:   "podcast",
	Short: "Two-speaker podcast generation",
	Long: `Two-speaker podcast generation from a screenplay script.

Scripts use "Speaker 1:" / "Speaker 2:" line prefixes; lines without a
prefix continue the previous speaker turn.

Example script (script.txt):
  Speaker 1: Hello! Welcome to our AI podcast.
  Speaker 2: Thanks for having me. This is going to be fun.
  Speaker 1: Let's see what we can create.`,
}

var podcastGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a podcast",
	Long: `Render a two-speaker podcast in one blocking request.

Both roles must be cast with voice models from the library. Without -f
the built-in example script is used.

Examples:
  voiceforge -c local podcast generate --speaker1 vm-1 --speaker2 vm-2 -f script.txt
  voiceforge -c local podcast generate --speaker1 vm-1 --speaker2 vm-2 -o podcast.wav`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		speaker1, _ := cmd.Flags().GetString("speaker1")
		speaker2, _ := cmd.Flags().GetString("speaker2")
		if speaker1 == "" || speaker2 == "" {
			return fmt.Errorf("both speakers are required, use --speaker1 and --speaker2 flags")
		}
		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)
		session := studio.NewPodcastSession(client)

		// Resolve the models so a bad ID fails here, not mid-render.
		for role, modelID := range map[string]string{
			studio.RoleSpeaker1: speaker1,
			studio.RoleSpeaker2: speaker2,
		} {
			model, err := client.Voice.Get(context.Background(), modelID)
			if err != nil {
				return fmt.Errorf("resolve voice %s: %w", modelID, err)
			}
			if err := session.SetCast(role, model.ID, model.Name); err != nil {
				return err
			}
		}

		if getInputFile() != "" {
			data, err := os.ReadFile(getInputFile())
			if err != nil {
				return fmt.Errorf("read script file: %w", err)
			}
			session.SetScript(string(data))
		}

		segments := studio.ParseScript(session.Snapshot().Script)
		printVerbose("Script: %d speaker turns", len(segments))

		resp, err := session.Generate(context.Background())
		if err != nil {
			return fmt.Errorf("podcast generation failed: %w", err)
		}

		printSuccess("Podcast rendered: %s (%s)", resp.ID, cli.FormatSeconds(resp.Duration))

		outputPath := getOutputFile()
		if outputPath != "" {
			rc, err := client.Podcast.Download(context.Background(), resp.ID)
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
			"id":        resp.ID,
			"audio_url": session.Snapshot().AudioURL,
			"duration":  resp.Duration,
			"segments":  resp.Segments,
		}
		if outputPath != "" {
			result["output_file"] = outputPath
		}

		return outputResult(result, "", isJSONOutput())
	},
}

var podcastDownloadCmd = &cobra.Command{
	Use:   "download <podcast_id>",
	Short: "Download a rendered podcast",
	Long: `Download a previously rendered podcast mix.

Examples:
  voiceforge -c local podcast download pc-1 -o podcast.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		podcastID := args[0]

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for podcast download, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)

		rc, err := client.Podcast.Download(context.Background(), podcastID)
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

var podcastScriptCmd = &cobra.Command{
	Use:   "script [script_file]",
	Short: "Parse a script into speaker turns",
	Long: `Parse a screenplay script into speaker turns without rendering.

Useful for checking how the server will split the script. Without an
argument the built-in example script is parsed.

Examples:
  voiceforge podcast script script.txt
  voiceforge podcast script script.txt --json --query ".[].speaker"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script := studio.DefaultScript
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script file: %w", err)
			}
			script = string(data)
		}

		segments := studio.ParseScript(script)
		return outputResult(segments, getOutputFile(), isJSONOutput())
	},
}

func init() {
	podcastGenerateCmd.Flags().String("speaker1", "", "Voice model ID for Speaker 1")
	podcastGenerateCmd.Flags().String("speaker2", "", "Voice model ID for Speaker 2")

	podcastCmd.AddCommand(podcastGenerateCmd)
	podcastCmd.AddCommand(podcastDownloadCmd)
	podcastCmd.AddCommand(podcastScriptCmd)
}
