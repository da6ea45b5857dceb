package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/speakabc/internal/audio"
	"codeberg.org/snonux/speakabc/internal/cli"
	"codeberg.org/snonux/speakabc/internal/models"
	"codeberg.org/snonux/speakabc/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-letters flag
	if flags.ListLetters {
		return cli.ListLetters(color.Output)
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(cmd.Context(), os.Stdout)
	}

	settings, err := cli.LoadSettings()
	if err != nil {
		return err
	}

	// Handle --clear-cache flag
	if flags.ClearCache {
		if err := audio.ClearCache(settings.Audio.CacheDir); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Printf("Cleared speech cache in %s\n", settings.Audio.CacheDir)
		return nil
	}

	proc := processor.NewProcessor(settings)

	if len(args) > 0 {
		return proc.SpeakLetter(cmd.Context(), args[0])
	}

	// No letter given - launch GUI mode by default
	return proc.RunGUIMode()
}
