package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vision/internal/app"
	"vision/internal/task"
)

type exportTask struct {
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	Status        string    `json:"status" yaml:"status"`
	Source        string    `json:"source" yaml:"source"`
	EstimatedTime string    `json:"estimated_time" yaml:"estimated_time"`
	PreparedItems []string  `json:"prepared_items" yaml:"prepared_items"`
	Position      int       `json:"position" yaml:"position"`
	Deleted       bool      `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
}

type exportFile struct {
	ExportedAt time.Time    `json:"exported_at" yaml:"exported_at"`
	Tasks      []exportTask `json:"tasks" yaml:"tasks"`
}

func runTasksExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	all, _ := cmd.Flags().GetBool("all")
	output, _ := cmd.Flags().GetString("output")

	if format != "yaml" && format != "json" {
		return fmt.Errorf("unknown format %q: use yaml or json", format)
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out, err := a.Tasks.List(ctx, task.ListInput{IncludeDeleted: all})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		return writeExport(w, format, toExportFile(out.Tasks, time.Now().UTC()))
	})
}

func toExportFile(tasks []task.Task, at time.Time) exportFile {
	out := exportFile{ExportedAt: at, Tasks: make([]exportTask, 0, len(tasks))}
	for _, t := range tasks {
		items := t.PreparedItems
		if items == nil {
			items = []string{}
		}
		out.Tasks = append(out.Tasks, exportTask{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			Status:        string(t.Status),
			Source:        string(t.Source),
			EstimatedTime: t.EstimatedTime,
			PreparedItems: items,
			Position:      t.Position,
			Deleted:       t.Deleted,
			CreatedAt:     t.CreatedAt.UTC(),
			UpdatedAt:     t.UpdatedAt.UTC(),
		})
	}
	return out
}

func writeExport(w io.Writer, format string, data exportFile) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
