package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string
var optVerbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dialsim",
	Short: "Touch rotation calibration simulator",
	Long: `dialsim hosts the dial calibration widget.

Turn the dial with two fingers (or drag the single-touch knob with the mouse)
and the heading changes are reported the way a device driver would see them.

Settings come from flags, DIALSIM_* environment variables, and dialsim.yaml
in the working directory or $HOME/.config/dialsim.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&cfgFile, "config", "", "config file (default dialsim.yaml)")
	pFlags.BoolVarP(&optVerbose, "verbose", "v", false, "log debug output")
	registerSessionFlags(pFlags)

	if err := viper.BindPFlags(pFlags); err != nil {
		panic(err)
	}
}

// registerSessionFlags defines one flag per simConfig key, defaulting to
// defaultSimConfig.
func registerSessionFlags(fs *pflag.FlagSet) {
	d := defaultSimConfig()
	fs.String("anchor", d.Anchor, "gesture mode: two-finger or single")
	fs.Int("intro-fps", d.IntroFPS, "intro animation frame rate")
	fs.Int("intro-ms", d.IntroMs, "intro animation duration in milliseconds")
	fs.String("intro-ease", d.IntroEase, "intro easing ("+strings.Join(easeNames(), ", ")+")")
	fs.Int("outro-fps", d.OutroFPS, "outro animation frame rate")
	fs.Int("outro-ms", d.OutroMs, "outro animation duration in milliseconds")
	fs.String("outro-ease", d.OutroEase, "outro easing")
	fs.Bool("full-invalidation", d.FullInvalidation, "repaint the whole surface on every frame")
	fs.Float64("marker-pad", d.MarkerPad, "padding around ring and finger markers for dirty regions")
	fs.Bool("debug", d.Debug, "log per-tick animation stats")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setDefaults(viper.GetViper())
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dialsim"))
		}
		viper.SetConfigName("dialsim")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DIALSIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "dialsim: config:", err)
		}
		return
	}
	slog.Debug("Using config file", "path", viper.ConfigFileUsed())
}

// setDefaultSlog installs a text handler on stderr, at debug level with
// --verbose.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	level := slog.LevelInfo
	if optVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("dialsim", "command", cmd.Name(), "args", args)
}
