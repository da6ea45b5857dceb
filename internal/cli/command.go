package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/speakabc/internal"
	"codeberg.org/snonux/speakabc/internal/audio"
	"codeberg.org/snonux/speakabc/internal/flashcard"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "speakabc [letter]",
		Short: "Talking alphabet flashcard",
		Long: `speakabc shows one letter of the alphabet at a time and speaks it.

Tap the card to hear the letter name, hold it to hear the letter sound,
swipe to move between letters. Bookmarked letters can be practised on
their own.

Speech uses OpenAI or Gemini TTS when an API key is configured and
falls back to espeak-ng.

Examples:
  speakabc                  # Launch the flashcard GUI (default)
  speakabc b                # Say "bee", then "buh", then "B is for Ball"
  speakabc --list-letters   # Print the letter table`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.speakabc.yaml)")

	// Local flags
	cmd.Flags().BoolVar(&flags.ListLetters, "list-letters", false, "Print the letter table and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI speech models for the current API key")
	cmd.Flags().BoolVar(&flags.ClearCache, "clear-cache", false, "Remove all cached speech clips and exit")

	// Card flags
	cmd.Flags().BoolVar(&flags.Lowercase, "lowercase", flags.Lowercase, "Start with lower case letters")
	cmd.Flags().BoolVar(&flags.Chain, "chain", flags.Chain, "Follow the letter sound with \"<L> is for <Word>\"")
	cmd.Flags().IntVar(&flags.Peek, "peek", flags.Peek, "Neighbouring letters shown on each side")

	// Gesture flags
	cmd.Flags().IntVar(&flags.HoldMs, "hold-ms", flags.HoldMs, "Press duration in milliseconds that counts as a hold")
	cmd.Flags().Float64Var(&flags.MovePx, "move-px", flags.MovePx, "Movement in pixels that turns a press into a swipe")
	cmd.Flags().Float64Var(&flags.SwipePx, "swipe-px", flags.SwipePx, "Horizontal distance in pixels a swipe needs to change letter")

	// Speech flags
	cmd.Flags().StringVar(&flags.Speech, "speech", flags.Speech, "Speech backend: auto, espeak, openai, gemini, none")
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", flags.CacheDir, "Directory for cached speech clips")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Do not cache speech clips")
	cmd.Flags().StringVar(&flags.Player, "player", "", "Audio player command (default: detected for the platform)")

	// espeak-ng flags
	cmd.Flags().StringVar(&flags.ESpeakVoice, "espeak-voice", flags.ESpeakVoice, "espeak-ng voice, e.g. en-us, en-gb, en-us+f3")
	cmd.Flags().IntVar(&flags.ESpeakSpeed, "espeak-speed", flags.ESpeakSpeed, "espeak-ng speed in words per minute (80 to 450)")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", flags.OpenAIInstruction, "Voice instructions for gpt-4o-mini-tts model")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini TTS model")
	cmd.Flags().StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice, e.g. Kore, Puck, Leda")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// viperFlags maps configuration keys to flag names
var viperFlags = map[string]string{
	"card.lowercase":            "lowercase",
	"card.chain":                "chain",
	"card.peek":                 "peek",
	"gesture.hold_ms":           "hold-ms",
	"gesture.move_px":           "move-px",
	"gesture.swipe_px":          "swipe-px",
	"speech.provider":           "speech",
	"speech.cache_dir":          "cache-dir",
	"speech.no_cache":           "no-cache",
	"speech.player":             "player",
	"speech.espeak_voice":       "espeak-voice",
	"speech.espeak_speed":       "espeak-speed",
	"speech.openai_model":       "openai-model",
	"speech.openai_voice":       "openai-voice",
	"speech.openai_speed":       "openai-speed",
	"speech.openai_instruction": "openai-instruction",
	"speech.gemini_model":       "gemini-model",
	"speech.gemini_voice":       "gemini-voice",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for key, name := range viperFlags {
		viper.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".speakabc" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".speakabc")
	}

	// Environment variables, e.g. SPEAKABC_SPEECH_PROVIDER
	viper.SetEnvPrefix("SPEAKABC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("speech.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("speech.gemini_key")
}

// Settings is the resolved configuration of one run
type Settings struct {
	Audio *audio.Config
	Card  *flashcard.Config
}

// LoadSettings resolves flags, config file and environment into settings.
// Keys that are not set anywhere keep the package defaults.
func LoadSettings() (*Settings, error) {
	a := audio.DefaultProviderConfig()
	c := flashcard.DefaultConfig()

	setString := func(key string, dst *string) {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	setInt := func(key string, dst *int) {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}
	setFloat := func(key string, dst *float64) {
		if viper.IsSet(key) {
			*dst = viper.GetFloat64(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if viper.IsSet(key) {
			*dst = viper.GetBool(key)
		}
	}

	setBool("card.lowercase", &c.Lowercase)
	setBool("card.chain", &c.ChainWord)
	setInt("card.peek", &c.PeekDepth)

	if viper.IsSet("gesture.hold_ms") {
		c.Gesture.Hold = time.Duration(viper.GetInt("gesture.hold_ms")) * time.Millisecond
	}
	setFloat("gesture.move_px", &c.Gesture.Move)
	setFloat("gesture.swipe_px", &c.Gesture.Swipe)

	setString("speech.provider", &a.Provider)
	setString("speech.cache_dir", &a.CacheDir)
	setString("speech.player", &a.Player)
	setString("speech.espeak_voice", &a.ESpeakVoice)
	setInt("speech.espeak_speed", &a.ESpeakSpeed)
	setString("speech.openai_model", &a.OpenAIModel)
	setString("speech.openai_voice", &a.OpenAIVoice)
	setFloat("speech.openai_speed", &a.OpenAISpeed)
	setString("speech.openai_instruction", &a.OpenAIInstruction)
	setString("speech.gemini_model", &a.GeminiModel)
	setString("speech.gemini_voice", &a.GeminiVoice)
	if viper.GetBool("speech.no_cache") {
		a.EnableCache = false
	}

	a.OpenAIKey = GetOpenAIKey()
	a.GeminiKey = GetGeminiKey()

	if err := validate(a, c); err != nil {
		return nil, err
	}
	return &Settings{Audio: a, Card: c}, nil
}

func validate(a *audio.Config, c *flashcard.Config) error {
	switch a.Provider {
	case "auto", "espeak", "openai", "gemini", "none":
	default:
		return fmt.Errorf("invalid speech backend %q: use auto, espeak, openai, gemini or none", a.Provider)
	}
	if c.Gesture.Hold <= 0 {
		return fmt.Errorf("hold duration must be positive, got %s", c.Gesture.Hold)
	}
	if c.Gesture.Move < 0 {
		return fmt.Errorf("move threshold must not be negative, got %.0f", c.Gesture.Move)
	}
	if c.Gesture.Swipe <= 0 {
		return fmt.Errorf("swipe threshold must be positive, got %.0f", c.Gesture.Swipe)
	}
	if c.PeekDepth < 0 || c.PeekDepth > 5 {
		return fmt.Errorf("peek must be between 0 and 5, got %d", c.PeekDepth)
	}
	if a.OpenAISpeed < 0.25 || a.OpenAISpeed > 4.0 {
		return fmt.Errorf("OpenAI speed must be between 0.25 and 4.0, got %.2f", a.OpenAISpeed)
	}
	return nil
}
