// Package output holds the CLI printing helpers shared by the commands.
package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// Error prints a formatted error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// Info prints a formatted line to stdout.
func Info(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// JSON prints v as indented JSON to stdout.
func JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// JSONError prints a machine-readable error object to stdout for --json mode.
func JSONError(code, message string) {
	_ = JSON(map[string]string{"error": code, "message": message})
}
