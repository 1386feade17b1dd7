// cmd/list.go
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/panels"
	"github.com/dev-mohitbeniwal/workbench/service"
)

type listOptions struct {
	search      string
	project     string
	trashed     bool
	page        int
	rowsPerPage int
}

type listOutput struct {
	Outcome       explorer.Outcome     `json:"outcome"`
	Error         string               `json:"error,omitempty"`
	Panel         *service.PanelView   `json:"panel"`
	Notifications []model.Notification `json:"notifications,omitempty"`
}

func newListCommand() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list <panel>",
		Short: "Load one page of a panel and print it as JSON",
		Example: `  workbench list projectPanel --project zzzzz-j7d0g-0123456789abcde
  workbench list searchResultsPanel --search "reads is:trashed"`,
		Args: cobra.ExactArgs(1),
		ValidArgs: []string{
			panels.ProjectPanelID,
			panels.SearchResultsPanelID,
			panels.AllProcessesPanelID,
			panels.TrashPanelID,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			return runList(cmd.Context(), a.services, args[0], opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.search, "search", "", "Search value of the panel")
	cmd.Flags().StringVar(&opts.project, "project", "", "Project uuid for projectPanel (defaults to the home project)")
	cmd.Flags().BoolVar(&opts.trashed, "trashed", false, "List the trash of the project")
	cmd.Flags().IntVar(&opts.page, "page", 0, "Zero based page")
	cmd.Flags().IntVar(&opts.rowsPerPage, "rows", 0, "Rows per page (defaults to explorer.rowsPerPage)")
	return cmd
}

// runList sets the panel criteria without loading, then performs exactly one
// load.
func runList(ctx context.Context, services *service.Services, id string, opts listOptions, w io.Writer) error {
	var actions []model.Action
	if opts.rowsPerPage > 0 {
		actions = append(actions, model.Action{Type: model.ActionSetRowsPerPage, RowsPerPage: opts.rowsPerPage})
	}
	if opts.search != "" {
		actions = append(actions, model.Action{Type: model.ActionSetExplorerSearchValue, SearchValue: opts.search})
	}
	if opts.page > 0 {
		actions = append(actions, model.Action{Type: model.ActionSetPage, Page: opts.page})
	}
	if _, err := services.Engine.Registry().Dispatch(id, actions...); err != nil {
		return err
	}

	if id == panels.ProjectPanelID {
		if opts.project == "" {
			if _, err := services.Project.ResolveHome(ctx); err != nil {
				return fmt.Errorf("could not open home project: %w", err)
			}
		} else {
			services.Project.SetProject(opts.project, opts.trashed)
		}
	}

	out, err := services.Panel.RequestItems(ctx, id, explorer.RequestOptions{CriteriaChanged: true})
	if err != nil {
		return err
	}
	services.Engine.Wait()

	view, err := services.Panel.GetPanel(ctx, id)
	if err != nil {
		return err
	}
	result := listOutput{
		Outcome:       out,
		Panel:         view,
		Notifications: services.Notifications.Recent(0),
	}
	if out.Err != nil {
		result.Error = out.Err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
