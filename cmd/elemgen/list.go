package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/elemgen/internal/engine"
)

type listOptions struct {
	jsonOutput bool
}

var listCmdRunner = runList

func newListCmd(root *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered components without writing any file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, root *rootFlags, opts *listOptions) error {
	ctrl, _, err := root.controller(cmd, "list")
	if err != nil {
		return err
	}

	plan, err := ctrl.Build()
	if err != nil {
		return newCommandError("list", "scanning "+ctrl.Root(), err, generateSuggestion(err))
	}

	if opts.jsonOutput {
		return renderListJSON(cmd, plan)
	}
	return renderListTable(cmd, root, plan)
}

func renderListTable(cmd *cobra.Command, root *rootFlags, plan *engine.Plan) error {
	out := cmd.OutOrStdout()
	if plan.Components() == 0 {
		fmt.Fprintln(out, "No components found.")
		fmt.Fprintln(out, "\nAnnotate a component class with a /** @tag my-element */ doc comment to register it.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "TAG\tTYPE\tCATEGORY\tSOURCE\tDEPENDS ON")
	for _, desc := range plan.Descriptors {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			desc.Tag,
			desc.TypeName,
			desc.Category,
			desc.SourceModule,
			valueOrFallback(strings.Join(desc.DependsOn, ", "), "-"),
		)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	renderWarnings(out, newStyles(out, root.noColor), plan.Warnings)
	return nil
}

type listJSONComponent struct {
	Tag       string   `json:"tag"`
	Type      string   `json:"type"`
	Export    string   `json:"export"`
	Category  string   `json:"category"`
	Source    string   `json:"source"`
	Line      int      `json:"line"`
	DependsOn []string `json:"depends_on"`
}

type listJSONWarning struct {
	Kind    string `json:"kind"`
	Tag     string `json:"tag,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

type listJSONPayload struct {
	Version    string              `json:"version"`
	Count      int                 `json:"count"`
	Components []listJSONComponent `json:"components"`
	Order      []string            `json:"order"`
	Warnings   []listJSONWarning   `json:"warnings"`
}

func renderListJSON(cmd *cobra.Command, plan *engine.Plan) error {
	payload := listJSONPayload{
		Version:    "1.0",
		Count:      plan.Components(),
		Components: make([]listJSONComponent, len(plan.Descriptors)),
		Order:      plan.Order,
		Warnings:   make([]listJSONWarning, len(plan.Warnings)),
	}

	for i, desc := range plan.Descriptors {
		deps := desc.DependsOn
		if deps == nil {
			deps = []string{}
		}
		payload.Components[i] = listJSONComponent{
			Tag:       desc.Tag,
			Type:      desc.TypeName,
			Export:    string(desc.Export),
			Category:  desc.Category,
			Source:    desc.SourceModule,
			Line:      desc.Line,
			DependsOn: deps,
		}
	}
	for i, w := range plan.Warnings {
		payload.Warnings[i] = listJSONWarning{Kind: string(w.Kind), Tag: w.Tag, Path: w.Path, Message: w.Message}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
