package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/ledge/internal/cli/styles"
	"github.com/bnema/ledge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Inspect, initialize, and validate the panel configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long:  `Load the config file, apply defaults, and print every panel profile.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Write a default config file to the XDG config directory if none exists.`,
	RunE:  runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the config JSON schema",
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	renderer := styles.NewConfigRenderer(styles.DefaultTheme())

	manager, err := config.NewManager()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	if err := manager.Load(); err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}

	fmt.Println(renderer.RenderConfig(manager.GetConfigFile(), manager.Get()))
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	renderer := styles.NewConfigRenderer(styles.DefaultTheme())

	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	if _, statErr := os.Stat(configFile); statErr == nil {
		fmt.Println(renderer.RenderSuccess("config already exists at " + configFile))
		return nil
	}

	// Load writes the default config when the file is missing.
	manager, err := config.NewManager()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	if err := manager.Load(); err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	fmt.Println(renderer.RenderSuccess("created " + configFile))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	data, err := config.SchemaJSON()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
