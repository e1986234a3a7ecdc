package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandInfo describes one command of the fuelog CLI
type CommandInfo struct {
	Path  string     `json:"path"`
	Short string     `json:"short"`
	Usage string     `json:"usage"`
	Flags []FlagInfo `json:"flags,omitempty"`
}

// FlagInfo describes a command flag
type FlagInfo struct {
	Name      string `json:"name"`
	Shorthand string `json:"shorthand,omitempty"`
	Type      string `json:"type"`
	Default   string `json:"default,omitempty"`
	Usage     string `json:"usage"`
}

var commandsJSON bool

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List every fuelog command with its flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := collectCommands(cmd.Root())

		if commandsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(infos)
		}

		writeCommands(cmd.OutOrStdout(), infos)

		return nil
	},
}

// collectCommands walks the command tree depth first
func collectCommands(root *cobra.Command) []CommandInfo {
	var infos []CommandInfo

	for _, c := range root.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}

		infos = append(infos, CommandInfo{
			Path:  c.CommandPath(),
			Short: c.Short,
			Usage: c.UseLine(),
			Flags: collectFlags(c.Flags()),
		})

		infos = append(infos, collectCommands(c)...)
	}

	return infos
}

func collectFlags(fs *pflag.FlagSet) []FlagInfo {
	var flags []FlagInfo

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" {
			return
		}

		flags = append(flags, FlagInfo{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Type:      f.Value.Type(),
			Default:   f.DefValue,
			Usage:     f.Usage,
		})
	})

	return flags
}

func writeCommands(w io.Writer, infos []CommandInfo) {
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%s\n    %s\n", headerStyle.Render(info.Path), info.Short)

		for _, f := range info.Flags {
			name := "--" + f.Name
			if f.Shorthand != "" {
				name = "-" + f.Shorthand + ", " + name
			}

			_, _ = fmt.Fprintf(w, "    %-16s %s\n", name, strings.TrimSpace(f.Usage))
		}
	}
}

func init() {
	rootCmd.AddCommand(commandsCmd)
	commandsCmd.Flags().BoolVar(&commandsJSON, "json", false, "Output as JSON")
}
