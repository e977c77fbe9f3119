package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/studiokit/studiokit/internal/identity"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Config represents the configuration for the studiokit CLI.
// It contains server connection details and the persisted identity so a
// logged-in user survives process restarts. Environment variables override
// the file values; a .env file in the working directory is honored.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version" env:"-"`
	// ServerURL is the URL of the booking service
	ServerURL string `yaml:"server_url" env:"STUDIOKIT_SERVER_URL"`
	// Token is the credential issued at login; opaque to the client
	Token string `yaml:"token" env:"STUDIOKIT_TOKEN"`
	// TokenType is the credential scheme, normally Bearer
	TokenType string `yaml:"token_type" env:"STUDIOKIT_TOKEN_TYPE"`
	// TokenExpiry is when the token expires, informational only
	TokenExpiry string `yaml:"token_expiry" env:"-"`
	// UserID, Username, FirstName, LastName, Admin mirror the logged-in identity
	UserID    int64  `yaml:"user_id" env:"-"`
	Username  string `yaml:"username" env:"-"`
	FirstName string `yaml:"first_name" env:"-"`
	LastName  string `yaml:"last_name" env:"-"`
	Admin     bool   `yaml:"admin" env:"-"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file.
// It uses the OS-specific config directory (e.g., ~/.config/studiokit on Linux).
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "studiokit", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file.
// If no file is specified, it uses the default config location.
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

	if err := applyEnvOverrides(&c); err != nil {
		return err
	}

	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}

	// Morph the server URL before storing
	c.ServerURL = MorphServer(c.ServerURL)

	config = &c
	return nil
}

// applyEnvOverrides layers environment variables over the file values.
// A .env file in the working directory is loaded first when present.
func applyEnvOverrides(c *Config) error {
	_ = godotenv.Load()
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("unable to parse environment overrides: %w", err)
	}
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

// MorphServer ensures the server URL is properly formatted.
// Adds http:// prefix if missing and removes trailing slashes.
func MorphServer(server string) string {
	if server == "" {
		return server
	}

	server = strings.TrimRight(server, "/")

	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}

	return server
}

// GetServerURL returns the properly formatted server URL
func (cfg *Config) GetServerURL() string {
	return MorphServer(cfg.ServerURL)
}

// GetToken returns the stored credential token
func (cfg *Config) GetToken() string {
	return cfg.Token
}

// GetTokenType returns the stored credential scheme
func (cfg *Config) GetTokenType() string {
	return cfg.TokenType
}

// Identity reconstructs the persisted identity, if any.
func (cfg *Config) Identity() (identity.Identity, bool) {
	if cfg.Token == "" {
		return identity.Identity{}, false
	}
	return identity.Identity{
		ID:        cfg.UserID,
		Username:  cfg.Username,
		FirstName: cfg.FirstName,
		LastName:  cfg.LastName,
		Admin:     cfg.Admin,
		Token:     cfg.Token,
		TokenType: cfg.TokenType,
	}, true
}

// SetIdentity stores the identity fields in the config.
func (cfg *Config) SetIdentity(ident identity.Identity, expiry string) {
	cfg.Token = ident.Token
	cfg.TokenType = ident.TokenType
	cfg.TokenExpiry = expiry
	cfg.UserID = ident.ID
	cfg.Username = ident.Username
	cfg.FirstName = ident.FirstName
	cfg.LastName = ident.LastName
	cfg.Admin = ident.Admin
}

// ClearIdentity removes the persisted identity from the config.
func (cfg *Config) ClearIdentity() {
	cfg.Token = ""
	cfg.TokenType = ""
	cfg.TokenExpiry = ""
	cfg.UserID = 0
	cfg.Username = ""
	cfg.FirstName = ""
	cfg.LastName = ""
	cfg.Admin = false
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `Manage CLI configuration settings like the server connection.`,
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
	Short: "Clear the stored credentials",
	Long: `Clear the stored credentials. This removes the authentication token and the
persisted identity, keeping the server configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadConfig(configFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("studiokit config file not found. Configure studiokit with \"studiokit config --server <url>\" first.")
				os.Exit(1)
			} else {
				fmt.Printf("Unable to load config file: %s\n", err.Error())
				os.Exit(1)
			}
		}
		cfg := GetConfig()
		cfg.ClearIdentity()

		if err := cfg.WriteConfig(configFile); err != nil {
			return fmt.Errorf("failed to save config: %v", err)
		}

		if jsonOutput {
			printJSON(map[string]int{"result": 1})
		} else {
			fmt.Println("Credentials cleared. Log in again with \"studiokit login\"")
		}

		return nil
	},
}

func init() {
	configCmd.Flags().String("server", "", "Set the server URL (e.g. https://booking.example.com)")

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
		ServerURL: MorphServer(server),
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
