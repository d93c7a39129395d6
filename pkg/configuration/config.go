package configuration

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds the application configuration
type Config struct {
	settings map[string]map[string]string
	filePath string
	mu       sync.RWMutex
}

var (
	globalConfig *Config
	once         sync.Once
)

// Initialize loads the global configuration from the given path. A missing
// file is created with defaults; settings.local.cfg overrides are applied on
// top when present.
func Initialize(configPath string) error {
	var err error
	once.Do(func() {
		globalConfig, err = loadConfig(configPath)
		if err != nil {
			return
		}
		localConfigPath := "settings.local.cfg"
		if _, statErr := os.Stat(localConfigPath); statErr == nil {
			if loadErr := globalConfig.loadLocalConfig(localConfigPath); loadErr != nil {
				// Silent error - config loading continues with base config
			}
		}
	})
	return err
}

func loadConfig(filePath string) (*Config, error) {
	config := &Config{
		settings: make(map[string]map[string]string),
		filePath: filePath,
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		config.createDefaultConfig()
		if err := config.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}
		return config, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	currentSection := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = line[1 : len(line)-1]
			if config.settings[currentSection] == nil {
				config.settings[currentSection] = make(map[string]string)
			}
			continue
		}

		if strings.Contains(line, "=") && currentSection != "" {
			parts := strings.SplitN(line, "=", 2)
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			config.settings[currentSection][key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadLocalConfig applies local overrides on top of the base configuration
func (c *Config) loadLocalConfig(filePath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	currentSection := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = line[1 : len(line)-1]
			if c.settings[currentSection] == nil {
				c.settings[currentSection] = make(map[string]string)
			}
			continue
		}
		if strings.Contains(line, "=") && currentSection != "" {
			parts := strings.SplitN(line, "=", 2)
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			c.settings[currentSection][key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return nil
}

// createDefaultConfig fills in the default settings for all used parameters
func (c *Config) createDefaultConfig() {
	c.settings["Server"] = map[string]string{
		"listen_address":       ":8080",
		"read_timeout":         "15s",
		"write_timeout":        "15s",
		"idle_timeout":         "60s",
		"static_dir":           "web",
		"max_concurrent_users": "50",
	}

	c.settings["Canvas"] = map[string]string{
		"width":  "800",
		"height": "600",
	}

	c.settings["Interpreter"] = map[string]string{
		"max_loop_iterations": "1000000",
		"max_call_depth":      "256",
		"max_run_time":        "10s",
		"max_program_size_kb": "64",
	}

	c.settings["Network"] = map[string]string{
		"pong_timeout":        "90s",
		"write_wait_timeout":  "10s",
		"max_message_size_kb": "64",
		"max_channel_buffer":  "10000",
		"max_runs_per_minute": "60",
		"read_buffer_size":    "16384",
		"write_buffer_size":   "16384",
		"allowed_origins":     "http://localhost:8080,http://127.0.0.1:8080",
	}

	c.settings["Authentication"] = map[string]string{
		"max_username_length": "20",
		"min_username_length": "3",
		"max_password_length": "100",
		"min_password_length": "6",
		"password_hash_cost":  "12",
		"enable_guest_access": "true",
	}

	c.settings["JWT"] = map[string]string{
		"secret_key":             "ENVIRONMENT_VARIABLE_NOT_SET_FALLBACK",
		"token_expiration_hours": "24",
	}

	c.settings["Gallery"] = map[string]string{
		"database_path":         "sketchscript.db",
		"max_sketch_size_kb":    "64",
		"max_sketches_per_user": "100",
	}

	c.settings["Debug"] = map[string]string{
		"enable_debug_logging": "true",
		"log_level":            "INFO",
		"log_file":             "debug.log",
		"max_log_size_mb":      "10",
		"log_rotation_count":   "3",
		// Per-area toggles
		"log_websocket":   "false",
		"log_canvas":      "false",
		"log_interpreter": "false",
		"log_gallery":     "false",
		"log_auth":        "true",
		"log_database":    "false",
		"log_session":     "false",
		"log_config":      "true",
		"log_general":     "true",
	}
}

func (c *Config) saveToFile() error {
	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(c.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	file.WriteString("; SketchScript Configuration File\n")
	file.WriteString("; Generated automatically - modify with care\n")
	file.WriteString(";\n\n")

	sections := []string{"Server", "Canvas", "Interpreter", "Network", "Authentication", "JWT", "Gallery", "Debug"}

	for _, section := range sections {
		if settings, exists := c.settings[section]; exists {
			file.WriteString(fmt.Sprintf("[%s]\n", section))

			for key, value := range settings {
				file.WriteString(fmt.Sprintf("%s = %s\n", key, value))
			}

			file.WriteString("\n")
		}
	}

	return nil
}

// GetString returns a string value from the configuration
func GetString(section, key, defaultValue string) string {
	if globalConfig == nil {
		return defaultValue
	}

	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()

	if sectionMap, exists := globalConfig.settings[section]; exists {
		if value, exists := sectionMap[key]; exists {
			return value
		}
	}

	return defaultValue
}

// GetInt returns an integer value from the configuration
func GetInt(section, key string, defaultValue int) int {
	str := GetString(section, key, "")
	if str == "" {
		return defaultValue
	}

	if value, err := strconv.Atoi(str); err == nil {
		return value
	}

	return defaultValue
}

// GetFloat returns a float value from the configuration
func GetFloat(section, key string, defaultValue float64) float64 {
	str := GetString(section, key, "")
	if str == "" {
		return defaultValue
	}

	if value, err := strconv.ParseFloat(str, 64); err == nil {
		return value
	}

	return defaultValue
}

// GetBool returns a boolean value from the configuration
func GetBool(section, key string, defaultValue bool) bool {
	str := GetString(section, key, "")
	if str == "" {
		return defaultValue
	}

	if value, err := strconv.ParseBool(str); err == nil {
		return value
	}

	return defaultValue
}

// GetDuration returns a duration value from the configuration
func GetDuration(section, key string, defaultValue time.Duration) time.Duration {
	str := GetString(section, key, "")
	if str == "" {
		return defaultValue
	}

	if value, err := time.ParseDuration(str); err == nil {
		return value
	}

	return defaultValue
}

// GetSection returns all key-value pairs from a configuration section
func GetSection(sectionName string) map[string]string {
	if globalConfig == nil {
		return make(map[string]string)
	}

	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()

	if section, exists := globalConfig.settings[sectionName]; exists {
		result := make(map[string]string)
		for key, value := range section {
			result[key] = value
		}
		return result
	}

	return make(map[string]string)
}

// SetString sets a string value in the configuration
func SetString(section, key, value string) {
	if globalConfig == nil {
		return
	}

	globalConfig.mu.Lock()
	defer globalConfig.mu.Unlock()

	if globalConfig.settings[section] == nil {
		globalConfig.settings[section] = make(map[string]string)
	}

	globalConfig.settings[section][key] = value
}

// Save writes the current configuration back to its file
func Save() error {
	if globalConfig == nil {
		return fmt.Errorf("configuration not initialized")
	}

	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()

	return globalConfig.saveToFile()
}
