package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/samvad-hq/placeholder-explorer/internal/domain"
	"github.com/samvad-hq/placeholder-explorer/internal/storage"
)

// Table renders resources as bordered tables.
type Table struct{}

func (Table) Posts(w io.Writer, posts []domain.Post) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "User ID", "Title")
	for _, p := range posts {
		if err := appendRow(table, p.ID, p.UserID, TruncateWithEllipsis(p.Title, titleWidth)); err != nil {
			return err
		}
	}
	return renderTable(table)
}

func (Table) Users(w io.Writer, users []domain.User) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Email", "City")
	for _, u := range users {
		err := appendRow(table, u.ID,
			Truncate(u.Name, nameWidth),
			Truncate(u.Email, emailWidth),
			Truncate(u.Address.City, cityWidth),
		)
		if err != nil {
			return err
		}
	}
	return renderTable(table)
}

func (Table) PostDetail(w io.Writer, post domain.Post) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	rows := [][]any{
		{"Post ID", post.ID},
		{"User ID", post.UserID},
		{"Title", post.Title},
		{"Body", post.Body},
	}
	for _, row := range rows {
		if err := appendRow(table, row...); err != nil {
			return err
		}
	}
	return renderTable(table)
}

func (Table) Comments(w io.Writer, comments []domain.Comment) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Email", "Name", "Body")
	for _, c := range comments {
		if err := appendRow(table, c.ID, c.Email, c.Name, TruncateWithEllipsis(c.Body, commentWidth)); err != nil {
			return err
		}
	}
	return renderTable(table)
}

// Journal renders request journal entries, newest first as given.
func Journal(w io.Writer, entries []storage.Entry) error {
	table := tablewriter.NewWriter(w)
	table.Header("When", "Endpoint", "Status", "Outcome", "Elapsed", "Error")
	for _, e := range entries {
		status := "-"
		if e.Status > 0 {
			status = fmt.Sprintf("%d", e.Status)
		}
		err := appendRow(table,
			e.At.Local().Format("2006-01-02 15:04:05"),
			e.Endpoint,
			status,
			e.OutcomeLabel(),
			fmt.Sprintf("%dms", e.ElapsedMs),
			Truncate(e.Error, 60),
		)
		if err != nil {
			return err
		}
	}
	return renderTable(table)
}

// rowAppender is the part of *tablewriter.Table that accepts rows.
type rowAppender interface {
	Append(rows ...interface{}) error
}

func appendRow(table rowAppender, cells ...any) error {
	if err := table.Append(cells...); err != nil {
		return fmt.Errorf("failed to append table row: %w", err)
	}
	return nil
}

func renderTable(table *tablewriter.Table) error {
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
