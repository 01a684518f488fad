package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samvad-hq/placeholder-explorer/internal/domain"
	"github.com/samvad-hq/placeholder-explorer/internal/logger"
	"github.com/samvad-hq/placeholder-explorer/internal/render"
	"github.com/samvad-hq/placeholder-explorer/pkg/placeholder"
)

// ResourceClient is the subset of the API client the menu drives.
type ResourceClient interface {
	GetPosts(ctx context.Context, limit int) ([]domain.Post, error)
	GetPost(ctx context.Context, id int) (domain.Post, error)
	GetUsers(ctx context.Context) ([]domain.User, error)
	GetComments(ctx context.Context, postID, limit int) ([]domain.Comment, error)
}

// State is a node of the menu state machine.
type State int

const (
	StateMenu State = iota
	StateFetchPosts
	StateFetchPostDetail
	StateFetchUsers
	StateFetchComments
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateFetchPosts:
		return "fetch_posts"
	case StateFetchPostDetail:
		return "fetch_post_detail"
	case StateFetchUsers:
		return "fetch_users"
	case StateFetchComments:
		return "fetch_comments"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

var choices = map[string]State{
	"1": StateFetchPosts,
	"2": StateFetchPostDetail,
	"3": StateFetchUsers,
	"4": StateFetchComments,
	"5": StateExit,
}

const (
	banner = "API Integration - JSONPlaceholder Demo"

	menuText = "\nOptions:\n" +
		"1. View Posts\n" +
		"2. View Post Details\n" +
		"3. View Users\n" +
		"4. View Comments for a Post\n" +
		"5. Exit\n"

	choicePrompt = "\nSelect option (1-5): "
	postIDPrompt = "Enter post ID (1-100): "
	farewell     = "\nThank you for using the API Integration script!\n"
	invalidText  = "Invalid choice. Please select 1-5.\n"

	defaultPageSize = 10
)

// InputError reports a user-supplied identifier rejected before any request.
type InputError struct {
	Input string
}

func (e *InputError) Error() string { return "Post ID must be a number" }

// ReadError reports a failure reading the input stream. It ends the session.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read input: %v", e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

// Options tunes the session.
type Options struct {
	// PageSize bounds the post and comment listings; zero lists everything.
	PageSize int
}

// Session runs the numbered-menu loop over one input stream.
type Session struct {
	client   ResourceClient
	renderer render.Renderer
	in       io.Reader
	out      io.Writer
	pageSize int
	log      logger.Logger

	lines   <-chan string
	readErr <-chan error
}

// New builds a Session. A nil renderer falls back to the fixed-width text renderer.
func New(client ResourceClient, r render.Renderer, in io.Reader, out io.Writer, opts Options, log logger.Logger) *Session {
	if r == nil {
		r = render.Text{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	pageSize := opts.PageSize
	if pageSize < 0 {
		pageSize = defaultPageSize
	}
	return &Session{
		client:   client,
		renderer: r,
		in:       in,
		out:      out,
		pageSize: pageSize,
		log:      log,
	}
}

// Run drives the menu until option 5, end of input, or ctx cancellation.
// Request failures never end the loop.
func (s *Session) Run(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("session is not initialized")
	}
	done := make(chan struct{})
	defer close(done)
	s.lines, s.readErr = scanLines(s.in, done)

	s.printf("%s\n%s\n%s\n", strings.Repeat("=", 80), banner, strings.Repeat("=", 80))

	state := StateMenu
	for state != StateExit {
		if state == StateMenu {
			next, err := s.menu(ctx)
			if err != nil {
				return err
			}
			state = next
			continue
		}

		if err := s.dispatch(ctx, state); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var readErr *ReadError
			if errors.As(err, &readErr) {
				return err
			}
			s.report(state, err)
		}
		state = StateMenu
	}
	return nil
}

func (s *Session) menu(ctx context.Context) (State, error) {
	s.printf("%s", menuText)
	s.printf("%s", choicePrompt)

	line, ok, err := s.readLine(ctx)
	if err != nil {
		return StateExit, err
	}
	if !ok {
		s.printf("\n")
		return StateExit, nil
	}

	next, known := choices[strings.TrimSpace(line)]
	switch {
	case !known:
		s.printf("%s", invalidText)
		return StateMenu, nil
	case next == StateExit:
		s.printf("%s", farewell)
	}
	return next, nil
}

// dispatch runs one fetch state; it performs at most one request.
func (s *Session) dispatch(ctx context.Context, state State) error {
	switch state {
	case StateFetchPosts:
		s.printf("\nFetching posts...\n")
		posts, err := s.client.GetPosts(ctx, s.pageSize)
		if err != nil {
			return err
		}
		return s.renderer.Posts(s.out, posts)

	case StateFetchPostDetail:
		id, raw, err := s.readPostID(ctx)
		if err != nil {
			return err
		}
		s.printf("\nFetching post %s...\n", raw)
		post, err := s.client.GetPost(ctx, id)
		if err != nil {
			return err
		}
		return s.renderer.PostDetail(s.out, post)

	case StateFetchUsers:
		s.printf("\nFetching users...\n")
		users, err := s.client.GetUsers(ctx)
		if err != nil {
			return err
		}
		return s.renderer.Users(s.out, users)

	case StateFetchComments:
		id, raw, err := s.readPostID(ctx)
		if err != nil {
			return err
		}
		s.printf("\nFetching comments for post %s...\n", raw)
		comments, err := s.client.GetComments(ctx, id, s.pageSize)
		if err != nil {
			return err
		}
		return s.renderer.Comments(s.out, comments)

	default:
		return fmt.Errorf("unexpected state %s", state)
	}
}

// readPostID reads and validates a post id. End of input counts as an empty id.
func (s *Session) readPostID(ctx context.Context) (int, string, error) {
	s.printf("%s", postIDPrompt)
	line, _, err := s.readLine(ctx)
	if err != nil {
		return 0, "", err
	}
	raw := strings.TrimSpace(line)
	id, err := ParsePostID(raw)
	if err != nil {
		return 0, raw, err
	}
	return id, raw, nil
}

// ParsePostID accepts a non-empty run of ASCII decimal digits that fits in an int.
func ParsePostID(raw string) (int, error) {
	if raw == "" {
		return 0, &InputError{Input: raw}
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, &InputError{Input: raw}
		}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InputError{Input: raw}
	}
	return id, nil
}

// report prints the one-line error message for a failed state.
func (s *Session) report(state State, err error) {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		s.printf("Error: %v\n", err)
		return
	}
	s.log.DebugObj("menu action failed", "session_error", map[string]any{
		"state":  state.String(),
		"kind":   string(placeholder.Classify(err)),
		"status": placeholder.StatusCode(err),
		"error":  err.Error(),
	})
	s.printf("\nError: %v\n", err)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// readLine returns the next input line; ok is false at end of input.
// A failed read is returned as an error rather than treated as end of input.
func (s *Session) readLine(ctx context.Context) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-s.lines:
		if ok {
			return line, true, nil
		}
		select {
		case err := <-s.readErr:
			return "", false, &ReadError{Err: err}
		default:
			return "", false, nil
		}
	}
}

// scanLines feeds input lines one at a time so a blocked read can be abandoned
// when the context is cancelled. The lines channel is closed at end of input,
// after any scanner error has been queued on the error channel.
func scanLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- err
		}
	}()
	return lines, errc
}
