package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sitewatch/internal/config"
	"github.com/rileyhilliard/sitewatch/internal/ui"
)

// addCmd appends a site to the config file.
var addCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a site to the watch list",
	Long: `Add a site to the config file in use. YAML files keep their comments
and layout. Without any config file, ~/.config/sitewatch/config.yaml is
created.

A URL without a scheme is treated as https.

Examples:
  sitewatch add Blog blog.example.com
  sitewatch add "Status API" http://localhost:8080/health
  sitewatch add Docs https://docs.example.com --config ./sites.json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addCommand(args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func addCommand(name, rawURL string, out io.Writer) error {
	path, err := addTarget(cfgFile)
	if err != nil {
		return err
	}

	site := config.Site{Name: strings.TrimSpace(name), URL: withScheme(rawURL)}
	if err := config.AddSite(path, site); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Added %s (%s) to %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), site.Name, site.URL, path)
	return nil
}

// addTarget picks the file add writes to: an explicit --config path (created
// if missing), the config that would be loaded, or the global config.
func addTarget(explicit string) (string, error) {
	if explicit != "" {
		return config.ExpandTilde(explicit), nil
	}
	path, err := config.Find("")
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	if global := config.GlobalConfigPath(); global != "" {
		return global, nil
	}
	return config.LocalConfigFiles[1], nil
}

// withScheme defaults bare hosts to https.
func withScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}
