package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/assetops/backend/internal/application/listview"
	"github.com/assetops/backend/internal/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resource names the other commands accept",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range client.ResourceNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", name, client.StyleMuted.Render(client.Resources[name]))
			}
		},
	}
}

type listOptions struct {
	query     listview.Query
	columns   []string
	filters   []string
	outputRaw bool
}

func newListCmd(opts *rootOptions) *cobra.Command {
	lo := &listOptions{}
	cmd := &cobra.Command{
		Use:     "list <resource>",
		Aliases: []string{"ls"},
		Short:   "List records of a resource as a table",
		Long: `List records of a resource. Up to 500 records are fetched from the server,
then searched, filtered by date, sorted and paginated locally.`,
		Example: `  assetctl list assets --search laptop --sort acquisition_cost --desc
  assetctl list leases --from 2024-01-01 --to 2024-12-31 --page 2
  assetctl list assets --columns tag:Tag,name,status --filter status=active`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireSession(); err != nil {
				return err
			}
			server := url.Values{}
			for _, f := range lo.filters {
				key, value, ok := strings.Cut(f, "=")
				if !ok || strings.TrimSpace(key) == "" {
					return fmt.Errorf("invalid filter %q, expected key=value", f)
				}
				server.Add(strings.TrimSpace(key), strings.TrimSpace(value))
			}

			records, err := opts.client.List(cmd.Context(), args[0], server)
			if err != nil {
				return err
			}
			page, err := listview.Apply(records, lo.query)
			if err != nil {
				return err
			}
			if lo.outputRaw {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(page)
			}
			return client.RenderPage(cmd.OutOrStdout(), args[0], page, listview.ParseColumns(lo.columns))
		},
	}
	f := cmd.Flags()
	f.StringVar(&lo.query.Search, "search", "", "Case-insensitive substring over every field")
	f.StringVar(&lo.query.DateField, "date-field", listview.DefaultDateField, "Field the --from/--to range applies to")
	f.StringVar(&lo.query.From, "from", "", "Earliest date (YYYY-MM-DD or RFC 3339)")
	f.StringVar(&lo.query.To, "to", "", "Latest date, inclusive (YYYY-MM-DD or RFC 3339)")
	f.StringVar(&lo.query.SortBy, "sort", "", "Field to sort by")
	f.BoolVar(&lo.query.SortDesc, "desc", false, "Sort descending")
	f.IntVar(&lo.query.Page, "page", 1, "Page number")
	f.IntVar(&lo.query.PageSize, "page-size", listview.DefaultPageSize, "Rows per page")
	f.StringSliceVar(&lo.columns, "columns", nil, "Columns to show, as key or key:Title")
	f.StringArrayVar(&lo.filters, "filter", nil, "Server-side filter key=value (repeatable)")
	f.BoolVar(&lo.outputRaw, "json", false, "Print the page as JSON")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireSession(); err != nil {
				return err
			}
			rec, err := opts.client.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return client.RenderRecord(cmd.OutOrStdout(), args[0]+" "+args[1], rec)
		},
	}
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "create <resource> -f <file>",
		Short:   "Create a record from a YAML or JSON file",
		Example: "  assetctl create categories -f category.yaml\n  cat asset.json | assetctl create assets -f -",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireSession(); err != nil {
				return err
			}
			body, err := readBody(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			rec, err := opts.client.Create(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.FormatSuccess("Created "+describe(args[0], rec)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON body, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <resource> <id> -f <file>",
		Short: "Update a record from a YAML or JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireSession(); err != nil {
				return err
			}
			body, err := readBody(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			rec, err := opts.client.Update(cmd.Context(), args[0], args[1], body)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.FormatSuccess("Updated "+describe(args[0], rec)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON body, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <resource> <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireSession(); err != nil {
				return err
			}
			if err := opts.client.Delete(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.FormatSuccess(fmt.Sprintf("Deleted %s %s", args[0], args[1])))
			return nil
		},
	}
}

// readBody decodes a request body file. JSON files are decoded as JSON,
// everything else as YAML.
func readBody(stdin io.Reader, file string) (map[string]any, error) {
	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	body := map[string]any{}
	if strings.EqualFold(filepath.Ext(file), ".json") {
		err = json.Unmarshal(raw, &body)
	} else {
		err = yaml.Unmarshal(raw, &body)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%s has no fields", file)
	}
	return body, nil
}

func describe(resource string, rec listview.Record) string {
	for _, key := range []string{"code", "tag", "name", "email"} {
		if v := listview.Cell(rec, key); v != "" {
			return fmt.Sprintf("%s %s (%s)", resource, v, listview.Cell(rec, "id"))
		}
	}
	return resource + " " + listview.Cell(rec, "id")
}
