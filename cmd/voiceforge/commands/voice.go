package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voiceforge/voiceforge-go/pkg/cli"
	"github.com/voiceforge/voiceforge-go/pkg/voiceforge"
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Voice model management",
	Long: `Voice model management.

Clone voices from uploaded recordings and manage the voice library.`,
}

var voiceCloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Clone a voice from an uploaded recording",
	Long: `Clone a voice from an uploaded recording.

Provide the recording handle and a model name either with flags or a
request file.

Example request file (clone.yaml):
  audio_id: a-1
  name: Narrator
  tags: [warm, male]

Examples:
  voiceforge -c local voice clone --audio a-1 --name "Narrator"
  voiceforge -c local voice clone -f clone.yaml --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		var req voiceforge.CloneRequest
		if getInputFile() != "" {
			if err := loadRequest(getInputFile(), &req); err != nil {
				return err
			}
		}
		if audioID, _ := cmd.Flags().GetString("audio"); audioID != "" {
			req.AudioID = audioID
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			req.Name = name
		}
		if tags, _ := cmd.Flags().GetStringSlice("tags"); len(tags) > 0 {
			req.Tags = tags
		}
		if req.AudioID == "" {
			return fmt.Errorf("audio id is required, use --audio flag or a request file")
		}
		if req.Name == "" {
			return fmt.Errorf("voice name is required, use --name flag or a request file")
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Cloning from audio: %s", req.AudioID)

		client := createClient(ctx)

		model, err := client.Voice.Clone(context.Background(), &req)
		if err != nil {
			return fmt.Errorf("voice clone failed: %w", err)
		}

		printSuccess("Voice cloned: %s (%s)", model.Name, model.ID)

		return outputResult(model, getOutputFile(), isJSONOutput())
	},
}

var voiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the voice library",
	Long: `List all voice models in the library.

Examples:
  voiceforge -c local voice list
  voiceforge -c local voice list --json --query ".[].id"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)

		models, err := client.Voice.List(context.Background())
		if err != nil {
			return fmt.Errorf("list voices failed: %w", err)
		}

		return outputResult(models, getOutputFile(), isJSONOutput())
	},
}

var voiceGetCmd = &cobra.Command{
	Use:   "get <model_id>",
	Short: "Show a voice model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelID := args[0]

		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)

		model, err := client.Voice.Get(context.Background(), modelID)
		if err != nil {
			return fmt.Errorf("get voice failed: %w", err)
		}

		return outputResult(model, getOutputFile(), isJSONOutput())
	},
}

var voiceDeleteCmd = &cobra.Command{
	Use:   "delete <model_id>",
	Short: "Delete a voice model",
	Long: `Delete a voice model from the library.

Deletion does not touch generated audio or podcast casts that still
reference the model.

Examples:
  voiceforge -c local voice delete vm-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelID := args[0]

		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Deleting voice: %s", modelID)

		client := createClient(ctx)

		if err := client.Voice.Delete(context.Background(), modelID); err != nil {
			return fmt.Errorf("delete voice failed: %w", err)
		}

		printSuccess("Voice deleted: %s", modelID)
		return nil
	},
}

var voicePreviewCmd = &cobra.Command{
	Use:   "preview <model_id>",
	Short: "Download a voice preview clip",
	Long: `Download the short preview clip of a voice model.

Examples:
  voiceforge -c local voice preview vm-1 -o preview.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelID := args[0]

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for preview audio, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)

		rc, err := client.Voice.Preview(context.Background(), modelID)
		if err != nil {
			return fmt.Errorf("preview failed: %w", err)
		}

		n, err := saveStream(rc, outputPath)
		if err != nil {
			return err
		}

		printSuccess("Preview saved to: %s (%s)", outputPath, cli.FormatBytes(n))
		return nil
	},
}

func init() {
	voiceCloneCmd.Flags().String("audio", "", "Uploaded recording handle")
	voiceCloneCmd.Flags().String("name", "", "Name for the cloned voice")
	voiceCloneCmd.Flags().StringSlice("tags", nil, "Tags for the cloned voice")

	voiceCmd.AddCommand(voiceCloneCmd)
	voiceCmd.AddCommand(voiceListCmd)
	voiceCmd.AddCommand(voiceGetCmd)
	voiceCmd.AddCommand(voiceDeleteCmd)
	voiceCmd.AddCommand(voicePreviewCmd)
}
