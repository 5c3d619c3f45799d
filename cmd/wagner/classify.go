package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"wagner/internal/signal"
	"wagner/internal/signal/sigfile"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [flags] <file.yaml>",
		Short: "Print the shape of every node in a signal graph file",
		Args:  cobra.ExactArgs(1),
		RunE:  runClassify,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

type classifiedNode struct {
	ID    signal.NodeID   `json:"id"`
	Key   string          `json:"key,omitempty"`
	Shape string          `json:"shape"`
	Kids  []signal.NodeID `json:"kids,omitempty"`
	Info  string          `json:"info,omitempty"`
	Root  bool            `json:"root,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	loaded, err := sigfile.LoadFile(args[0])
	if err != nil {
		return err
	}
	nodes := classifyAll(loaded)
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	case "pretty":
		writeClassified(cmd.OutOrStdout(), nodes)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func classifyAll(l *sigfile.Loaded) []classifiedNode {
	ids := l.Graph.Nodes()
	out := make([]classifiedNode, 0, len(ids))
	for _, id := range ids {
		m := l.Graph.Classify(id)
		out = append(out, classifiedNode{
			ID:    id,
			Key:   l.Key(id),
			Shape: m.Shape.String(),
			Kids:  m.Kids,
			Info:  matchInfo(m),
			Root:  id == l.Root,
		})
	}
	return out
}

// matchInfo renders the literal payload a shape carries, if any.
func matchInfo(m signal.Match) string {
	switch m.Shape {
	case signal.ShapeInt:
		return strconv.FormatInt(m.Int, 10)
	case signal.ShapeReal:
		return strconv.FormatFloat(m.Real, 'g', -1, 64)
	case signal.ShapeProj, signal.ShapeRef, signal.ShapeInput, signal.ShapeOutput:
		return "index=" + strconv.Itoa(m.Index)
	case signal.ShapeBinOp:
		return m.Op.String()
	case signal.ShapeXtended:
		if m.Prim != nil {
			return m.Prim.Name + "/" + strconv.Itoa(m.Prim.Arity)
		}
	}
	if m.Label != "" {
		return strconv.Quote(m.Label)
	}
	return ""
}

func writeClassified(out io.Writer, nodes []classifiedNode) {
	keyWidth, shapeWidth := 0, 0
	for _, n := range nodes {
		keyWidth = max(keyWidth, runewidth.StringWidth(n.Key))
		shapeWidth = max(shapeWidth, runewidth.StringWidth(n.Shape))
	}
	idWidth := len(strconv.Itoa(len(nodes)))
	for _, n := range nodes {
		var b strings.Builder
		mark := " "
		if n.Root {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s%*d  %s  %s", mark, idWidth, n.ID,
			runewidth.FillRight(n.Key, keyWidth), runewidth.FillRight(n.Shape, shapeWidth))
		if len(n.Kids) > 0 {
			kids := make([]string, len(n.Kids))
			for i, k := range n.Kids {
				kids[i] = k.String()
			}
			b.WriteString("  [" + strings.Join(kids, " ") + "]")
		}
		if n.Info != "" {
			b.WriteString("  " + n.Info)
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}
}
