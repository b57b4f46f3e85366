// Package cli implements the cpubars command-line interface.
//
// The package is organized around Cobra commands, each delegating to a
// plain function that takes its options explicitly so it can be tested
// without a terminal:
//
//	cpubars [watch]   - Live per-core view (dashboard, text or html)
//	cpubars once      - One pull, printed and exit
//	cpubars init      - Create .cpubars.yaml
//	cpubars version   - Build information
//
// # Configuration Layering
//
// Values resolve in this order, later wins:
//
//  1. Built-in defaults (config.DefaultConfig)
//  2. Config file (--config, ./.cpubars.yaml, ~/.config/cpubars/config.yaml)
//  3. Environment (CPUBARS_URL, CPUBARS_MODE, ...)
//  4. Flags that were explicitly set
//
// # Flag Handling
//
// Global flags (--config, --verbose) live on the root command. Command
// flags are bound to viper keys in bindFlags so the same key names work
// in the file, the environment and on the command line.
package cli
