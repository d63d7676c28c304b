package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/portfolio-service/pkg/portfolio"
)

const (
	envBaseURL     = "PORTFOLIO_API_URL"
	envAdminToken  = "PORTFOLIO_ADMIN_TOKEN"
	defaultBaseURL = "http://localhost:8080"

	outputTable = "table"
	outputJSON  = "json"
)

type rootOptions struct {
	baseURL    string
	adminToken string
	output     string
	client     *portfolio.Client
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Manage portfolio projects",
		Long: `portfolioctl talks to the portfolio projects API.

Reads are public. create, update and delete need the admin token, passed with
--admin-token or the ` + envAdminToken + ` environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.output != outputTable && opts.output != outputJSON {
				return fmt.Errorf("unknown output format %q", opts.output)
			}
			opts.client = portfolio.New(opts.baseURL, portfolio.WithAdminToken(opts.adminToken))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", envOr(envBaseURL, defaultBaseURL), "API root URL")
	flags.StringVar(&opts.adminToken, "admin-token", os.Getenv(envAdminToken), "admin secret for mutating commands")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")

	cmd.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := opts.client.FetchProjects(cmd.Context())
			if err != nil {
				return opts.apiError(err)
			}
			return opts.print(cmd.OutOrStdout(), projects...)
		},
	}
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.client.FetchProjectBySlug(cmd.Context(), args[0])
			if err != nil {
				return opts.apiError(err)
			}
			return opts.print(cmd.OutOrStdout(), *p)
		},
	}
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create -f project.json",
		Short: "Create a project from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			p, err := opts.client.CreateProject(cmd.Context(), in, opts.adminToken)
			if err != nil {
				return opts.apiError(err)
			}
			return opts.print(cmd.OutOrStdout(), *p)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `project JSON file, "-" for stdin`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <id> -f project.json",
		Short: "Replace a project from a JSON file",
		Long:  "Replace a project. Optional fields missing from the file are cleared.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			p, err := opts.client.UpdateProject(cmd.Context(), id, in, opts.adminToken)
			if err != nil {
				return opts.apiError(err)
			}
			return opts.print(cmd.OutOrStdout(), *p)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `project JSON file, "-" for stdin`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := opts.client.DeleteProject(cmd.Context(), id, opts.adminToken); err != nil {
				return opts.apiError(err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted project %d\n", id)
			return err
		},
	}
}

// apiError prefixes err with the API root so a wrong --base-url shows up in
// the message.
func (o *rootOptions) apiError(err error) error {
	return fmt.Errorf("%s: %w", o.client.BaseURL(), err)
}

func (o *rootOptions) print(w io.Writer, projects ...portfolio.Project) error {
	if o.output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(projects) == 1 {
			return enc.Encode(projects[0])
		}
		return enc.Encode(projects)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Slug", "Name", "Status", "Featured", "Tech"})
	for _, p := range projects {
		t.AppendRow(table.Row{p.ID, p.Slug, p.Name, p.Status, p.Featured != nil && *p.Featured, len(p.Tech)})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(projects)})
	t.Render()
	return nil
}

// readInput decodes a project file. An "id" field is accepted and ignored so
// that the output of "get -o json" can be edited and fed back to update.
func readInput(stdin io.Reader, file string) (portfolio.ProjectInput, error) {
	var p portfolio.Project

	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return portfolio.ProjectInput{}, fmt.Errorf("opening project file: %w", err)
		}
		defer f.Close() //nolint:errcheck // read-only
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return portfolio.ProjectInput{}, fmt.Errorf("decoding project file: %w", err)
	}
	return p.ProjectInput, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid project id %q", raw)
	}
	return id, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
