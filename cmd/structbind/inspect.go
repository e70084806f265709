package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/structbind/transcoder"
)

func newInspectCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "List the public types of a BTF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBundle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			st := newStyles(cmd.OutOrStdout(), a.cfg.Color)
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderBundle(st, filepath.Base(args[0]), b, all))
			return err
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list internal units as well")
	return cmd
}

func renderBundle(st styles, source string, b *transcoder.Bundle, all bool) string {
	var sb strings.Builder
	sb.WriteString(st.title.Render("structbind"))
	fmt.Fprintf(&sb, " %s  (%d public, %d units)\n\n", source, len(b.Public), len(b.Internal))

	if all {
		for _, u := range b.Internal {
			label := u.Name
			if u.Type.Decl != "" {
				label += " " + u.Type.Decl
			}
			renderUnit(&sb, st, label, u)
		}
		return sb.String()
	}

	for _, p := range b.Public {
		renderUnit(&sb, st, p.Name, p.Unit)
	}
	return sb.String()
}

func renderUnit(sb *strings.Builder, st styles, label string, u *transcoder.Unit) {
	ct := u.Type
	fmt.Fprintf(sb, "%s  %s  %d bytes  %s\n", st.name.Render(label), st.kind.Render(ct.Kind.String()), ct.Size, u.Name)

	switch ct.Kind {
	case transcoder.KindStruct:
		width := 0
		for _, f := range ct.Fields {
			width = max(width, len(f.Key))
		}
		for _, f := range ct.Fields {
			fmt.Fprintf(sb, "  %-*s  +%-4d %4d  %s\n", width, f.Key, f.Offset, f.Size, st.kind.Render(f.Type.Name))
		}
	case transcoder.KindEnum:
		for _, c := range ct.Cases {
			fmt.Fprintf(sb, "  %s = %d\n", c.Name, c.Value)
		}
	case transcoder.KindText:
		fmt.Fprintf(sb, "  text, up to %d bytes\n", max(int(ct.Count)-1, 0))
	case transcoder.KindArray:
		fmt.Fprintf(sb, "  %d x %s\n", ct.Count, st.kind.Render(ct.Elem.Name))
	}
}
