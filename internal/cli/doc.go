// Package cli implements the sitewatch command-line interface.
//
// # Command Structure
//
// The root command runs the live dashboard; subcommands cover one-shot use
// and config editing:
//
//	sitewatch                  - Live dashboard (interactive, or plain with --plain)
//	sitewatch check [--json]   - One pass over every site, exit 1 if any is unhealthy
//	sitewatch add <name> <url> - Append a site to the config file
//	sitewatch init             - Write a starter config
//	sitewatch version          - Build information
//	sitewatch completion       - Shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --interval, --workers, --timeout, --verbose,
// --log-file) are persistent on the root command. Settings flags override
// the config file; see SettingsFlags.Apply.
//
// # Output
//
// The interactive dashboard takes over the terminal, so logging goes to
// --log-file or nowhere while it runs. Every other mode logs to stderr.
// Each run tags its log lines with a short run ID.
package cli
