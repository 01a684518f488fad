package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/samvad-hq/placeholder-explorer/internal/domain"
)

const (
	lineWidth = 80

	titleWidth   = 60
	nameWidth    = 23
	emailWidth   = 28
	cityWidth    = 18
	commentWidth = 100
)

var (
	heavyRule = strings.Repeat("=", lineWidth)
	lightRule = strings.Repeat("-", lineWidth)
)

// Text renders fixed-width columns and blocks.
type Text struct{}

func (Text) Posts(w io.Writer, posts []domain.Post) error {
	var b strings.Builder
	b.WriteString("\n" + heavyRule + "\n")
	fmt.Fprintf(&b, "%-5s %-10s %-65s\n", "ID", "User ID", "Title")
	b.WriteString(heavyRule + "\n")
	for _, p := range posts {
		fmt.Fprintf(&b, "%-5d %-10d %-65s\n", p.ID, p.UserID, TruncateWithEllipsis(p.Title, titleWidth))
	}
	b.WriteString(heavyRule + "\n")
	return write(w, &b)
}

func (Text) Users(w io.Writer, users []domain.User) error {
	var b strings.Builder
	b.WriteString("\n" + heavyRule + "\n")
	fmt.Fprintf(&b, "%-5s %-25s %-30s %-20s\n", "ID", "Name", "Email", "City")
	b.WriteString(heavyRule + "\n")
	for _, u := range users {
		fmt.Fprintf(&b, "%-5d %-25s %-30s %-20s\n",
			u.ID,
			Truncate(u.Name, nameWidth),
			Truncate(u.Email, emailWidth),
			Truncate(u.Address.City, cityWidth),
		)
	}
	b.WriteString(heavyRule + "\n")
	return write(w, &b)
}

func (Text) PostDetail(w io.Writer, post domain.Post) error {
	var b strings.Builder
	b.WriteString("\n" + heavyRule + "\n")
	fmt.Fprintf(&b, "Post ID: %d\n", post.ID)
	fmt.Fprintf(&b, "User ID: %d\n", post.UserID)
	fmt.Fprintf(&b, "Title: %s\n", post.Title)
	fmt.Fprintf(&b, "\nBody:\n%s\n", post.Body)
	b.WriteString(heavyRule + "\n")
	return write(w, &b)
}

func (Text) Comments(w io.Writer, comments []domain.Comment) error {
	var b strings.Builder
	b.WriteString("\n" + heavyRule + "\n")
	b.WriteString("Comments:\n")
	b.WriteString(heavyRule + "\n")
	for _, c := range comments {
		fmt.Fprintf(&b, "\nComment ID: %d\n", c.ID)
		fmt.Fprintf(&b, "Email: %s\n", c.Email)
		fmt.Fprintf(&b, "Name: %s\n", c.Name)
		fmt.Fprintf(&b, "Body: %s\n", TruncateWithEllipsis(c.Body, commentWidth))
		b.WriteString(lightRule + "\n")
	}
	return write(w, &b)
}

func write(w io.Writer, b *strings.Builder) error {
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
