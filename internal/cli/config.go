package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brixmarket/brix/internal/client"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Config represents the configuration for the Brix CLI.
// It contains server connection details and the persisted session token.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// ServerURL is the base URL of the Brix API server
	ServerURL string `yaml:"server_url" validate:"required"`
	// Username is the account name used for login
	Username string `yaml:"username"`
	// Password is the password for authentication (stored for convenience)
	Password string `yaml:"password"`
	// CurrentToken is the bearer token from the last login or refresh
	CurrentToken string `yaml:"current_token"`
}

var config *Config

var validate = validator.New()

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/brix on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "brix", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file and overlays
// environment variables (BRIX_SERVER, BRIX_USERNAME, BRIX_PASSWORD), loading
// a .env file from the working directory first if one exists.
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	if cwd, err := os.Getwd(); err == nil {
		_ = godotenv.Load(filepath.Join(cwd, ".env")) // no error if .env doesn't exist
	}
	if v := os.Getenv("BRIX_SERVER"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("BRIX_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("BRIX_PASSWORD"); v != "" {
		c.Password = v
	}

	if err := validate.Struct(&c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Morph the server URL before storing
	c.ServerURL = client.MorphServer(c.ServerURL)

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the current configuration to the specified file
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `Manage CLI configuration settings like server connection and stored credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverFlag, _ := cmd.Flags().GetString("server")
		if serverFlag != "" {
			return setServerConfig(serverFlag)
		}

		cmd.Help()
		return nil
	},
}

// configClearCmd represents the config clear command
var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the stored session token",
	Long: `Clear the stored session token. This removes the bearer token from the
config file without touching the server connection settings. Use it when you
want to force a fresh login.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadConfig(configFile); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("Brix config file not found. Configure brix with \"brix config --server <url>\" first.")
				os.Exit(1)
			} else {
				fmt.Printf("Unable to load config file: %s\n", err.Error())
				os.Exit(1)
			}
		}
		cfg := GetConfig()
		cfg.CurrentToken = ""
		// Password is kept so the next login can reuse it

		if err := cfg.WriteConfig(configFile); err != nil {
			return fmt.Errorf("failed to save config: %v", err)
		}

		if jsonOutput {
			printJSON(map[string]int{"result": 1})
		} else {
			fmt.Println("Session token cleared. Sign in again with \"brix login\".")
		}

		return nil
	},
}

func init() {
	configCmd.Flags().String("server", "", "Set the API server base URL (e.g., https://api.example.com)")

	configCmd.AddCommand(configClearCmd)
	rootCmd.AddCommand(configCmd)
}

// setServerConfig sets the server configuration in the config file
func setServerConfig(server string) error {
	configPath := configFile
	if configPath == "" {
		var err error
		configPath, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	cfg := &Config{
		Version:   "0.1.0",
		ServerURL: client.MorphServer(server),
	}

	if err := cfg.WriteConfig(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"server":      cfg.ServerURL,
			"config_file": configPath,
		})
	} else {
		fmt.Printf("Server configured: %s\n", cfg.ServerURL)
		fmt.Printf("Config file: %s\n", configPath)
	}

	return nil
}
