package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadConfigArgs reads the globwalk config file and returns parsed
// arguments. Config file location: GLOBWALK_CONFIG_PATH env var, or
// ~/.globwalk. Format: one flag per line, '#' comments, empty lines
// ignored. Returns nil if no config file is found — unchanged from the
// teacher's internal/cli/configfile.go beyond the renamed env var and
// dotfile.
func LoadConfigArgs() []string {
	path := os.Getenv("GLOBWALK_CONFIG_PATH")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".globwalk")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var args []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, line)
	}
	return args
}
