package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jrewrite/internal/logging"
	"github.com/yaklabco/jrewrite/pkg/jast"
)

const formatJSON = "json"

// kindInfo represents a node kind in JSON output.
type kindInfo struct {
	Kind  string     `json:"kind"`
	Slots []slotInfo `json:"slots"`
}

type slotInfo struct {
	Slot  string `json:"slot"`
	Shape string `json:"shape"`
}

func describeKind(k jast.Kind) kindInfo {
	info := kindInfo{Kind: k.String(), Slots: []slotInfo{}}
	for _, d := range jast.Descriptors(k) {
		info.Slots = append(info.Slots, slotInfo{Slot: d.Slot.String(), Shape: d.Shape.String()})
	}
	return info
}

func newKindsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "kinds [kind]",
		Short: "List syntax node kinds and their slots",
		Long: `List the node kinds a change script can match, with the slots of each
kind and what they hold: a child node, an optional child, a list of nodes,
or an int or string value. Pass a kind name to describe only that kind.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := jast.Kinds()
			if len(args) == 1 {
				k, ok := jast.ParseKind(args[0])
				if !ok {
					return withCode(ExitInvalidUsage, fmt.Errorf("unknown node kind %q", args[0]))
				}
				kinds = []jast.Kind{k}
			}

			infos := make([]kindInfo, 0, len(kinds))
			for _, k := range kinds {
				infos = append(infos, describeKind(k))
			}

			if format == formatJSON {
				return outputKindsJSON(cmd.OutOrStdout(), infos)
			}

			logger := logging.NewWriter(cmd.OutOrStdout(), "info")
			for _, info := range infos {
				slots := make([]string, 0, len(info.Slots))
				for _, s := range info.Slots {
					slots = append(slots, s.Slot+":"+s.Shape)
				}
				logger.Info(info.Kind, "slots", slots)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func outputKindsJSON(w io.Writer, infos []kindInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding kinds: %w", err)
	}
	return nil
}
