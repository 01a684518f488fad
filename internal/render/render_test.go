package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/placeholder-explorer/internal/domain"
	"github.com/samvad-hq/placeholder-explorer/internal/storage"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 3))
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "", Truncate("abc", -1))

	assert.Equal(t, "abc...", TruncateWithEllipsis("abcdef", 3))
	assert.Equal(t, "abc", TruncateWithEllipsis("abc", 3))
}

func TestTextPostsTruncatesLongTitle(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("A", 70)

	require.NoError(t, Text{}.Posts(&buf, []domain.Post{{ID: 1, UserID: 1, Title: long, Body: "x"}}))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, strings.Repeat("=", 80), lines[1])
	assert.Equal(t, "ID    User ID    Title"+strings.Repeat(" ", 60), lines[2])
	assert.Equal(t, strings.Repeat("=", 80), lines[3])

	wantTitle := strings.Repeat("A", 60) + "..."
	assert.Equal(t, "1     1          "+wantTitle+"  ", lines[4])
	assert.Equal(t, strings.Repeat("=", 80), lines[5])
}

func TestTextPostsShortTitleUntouched(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text{}.Posts(&buf, []domain.Post{{ID: 12, UserID: 2, Title: "short"}}))
	assert.Contains(t, buf.String(), "12    2          short ")
	assert.NotContains(t, buf.String(), "short...")
}

func TestTextUsersColumns(t *testing.T) {
	var buf bytes.Buffer
	user := domain.User{
		ID:      1,
		Name:    "Maximilian Alexander Longname",
		Email:   "someone.with.a.very.long@address.example",
		Address: domain.Address{City: "South Christyville Heights"},
	}

	require.NoError(t, Text{}.Users(&buf, []domain.User{user}))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "ID    Name                      Email                          City                ", lines[2])
	want := "1     " +
		padRight("Maximilian Alexander Lo", 25) + " " +
		padRight("someone.with.a.very.long@add", 30) + " " +
		padRight("South Christyville", 20)
	assert.Equal(t, want, lines[4])
}

func TestTextPostDetail(t *testing.T) {
	var buf bytes.Buffer
	body := strings.Repeat("body ", 50)

	require.NoError(t, Text{}.PostDetail(&buf, domain.Post{ID: 4, UserID: 9, Title: "eum et est", Body: body}))

	want := "\n" + strings.Repeat("=", 80) + "\n" +
		"Post ID: 4\n" +
		"User ID: 9\n" +
		"Title: eum et est\n" +
		"\nBody:\n" + body + "\n" +
		strings.Repeat("=", 80) + "\n"
	assert.Equal(t, want, buf.String())
}

func TestTextCommentsEllipsisOnlyWhenCut(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("z", 130)

	require.NoError(t, Text{}.Comments(&buf, []domain.Comment{
		{ID: 1, PostID: 1, Name: "short one", Email: "a@b", Body: "tiny"},
		{ID: 2, PostID: 1, Name: "long one", Email: "c@d", Body: long},
	}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\n"+strings.Repeat("=", 80)+"\nComments:\n"))
	assert.Contains(t, out, "\nComment ID: 1\nEmail: a@b\nName: short one\nBody: tiny\n"+strings.Repeat("-", 80)+"\n")
	assert.Contains(t, out, "Body: "+strings.Repeat("z", 100)+"...\n")
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("-", 80)))
}

func TestTableRendersRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table{}.Posts(&buf, []domain.Post{{ID: 7, UserID: 3, Title: "qui est esse"}}))
	out := buf.String()
	assert.Contains(t, out, "qui est esse")
	assert.Contains(t, out, "7")
}

type failingAppender struct {
	err   error
	cells []any
}

func (f *failingAppender) Append(rows ...interface{}) error {
	f.cells = rows
	return f.err
}

func TestAppendRowReturnsAppendError(t *testing.T) {
	cause := errors.New("row has too many columns")
	appender := &failingAppender{err: cause}

	err := appendRow(appender, 1, "title")
	require.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "failed to append table row")
	assert.Equal(t, []any{1, "title"}, appender.cells)

	assert.NoError(t, appendRow(&failingAppender{}, "ok"))
}

func TestTablePostDetailRendersEveryProperty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table{}.PostDetail(&buf, domain.Post{ID: 4, UserID: 9, Title: "eum et est", Body: "ullam et saepe"}))
	out := buf.String()
	for _, want := range []string{"Post ID", "User ID", "eum et est", "ullam et saepe"} {
		assert.Contains(t, out, want)
	}
}

func TestYAMLRoundTripsRecords(t *testing.T) {
	var buf bytes.Buffer
	in := []domain.Comment{{ID: 1, PostID: 2, Name: "n", Email: "e", Body: "b"}}
	require.NoError(t, YAML{}.Comments(&buf, in))

	var out []domain.Comment
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in, out)
	assert.Contains(t, buf.String(), "postId: 2")
}

func TestJournalTable(t *testing.T) {
	var buf bytes.Buffer
	entries := []storage.Entry{
		{Endpoint: "posts/999", Status: 404, Outcome: "request_failed", ElapsedMs: 12, At: time.Now(), Error: "API request failed with status code: 404"},
		{Endpoint: "users", Outcome: "", ElapsedMs: 40, At: time.Now()},
	}
	require.NoError(t, Journal(&buf, entries))
	out := buf.String()
	assert.Contains(t, out, "posts/999")
	assert.Contains(t, out, "404")
	assert.Contains(t, out, "ok")
}

func TestNewSelectsFormat(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)
	assert.IsType(t, Text{}, r)

	r, err = New("TABLE")
	require.NoError(t, err)
	assert.IsType(t, Table{}, r)

	r, err = New("yaml")
	require.NoError(t, err)
	assert.IsType(t, YAML{}, r)

	_, err = New("xml")
	assert.Error(t, err)
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", width-len([]rune(s)))
}
