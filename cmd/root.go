package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

const logoHeader = `
       _ _             _       _          _
 _   _| | |_ _ __ __ _| | __ _| |__   ___| |
| | | | | __| '__/ _' | |/ _' | '_ \ / _ \ |
| |_| | | |_| | | (_| | | (_| | |_) |  __/ |
 \__,_|_|\__|_|  \__,_|_|\__,_|_.__/ \___|_|
`

var logoStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00FFFF"})

func printLogo() {
	fmt.Println(logoStyle.Render(logoHeader))
	fmt.Println()
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ultralabel",
	Short: "Label datasets with LLM generated annotations",
	Run: func(cmd *cobra.Command, args []string) {
		printLogo()
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ultralabel/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "The log level to use")
	rootCmd.PersistentFlags().String("tasks", "tasks.yaml", "The task definitions file")
	rootCmd.PersistentFlags().String("templates-dir", "", "The directory template references are resolved against")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		dir := filepath.Join(home, ".config", "ultralabel")
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0700); err != nil {
				log.Fatalf("failed to create config directory (%s): %s", dir, err)
			}
		}
		cfgFile = filepath.Join(dir, "config.yaml")
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.ReadInConfig()

	viper.SetDefault("overrides.argilla_url", "http://localhost:6900")
}
