package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrFieldMissing = errors.New("field missing")
	ErrFieldType    = errors.New("field has unexpected type")
	ErrNotObject    = errors.New("expected a JSON object")
	ErrNotList      = errors.New("expected a JSON array")
)

// FieldError names the record field that failed conversion.
type FieldError struct {
	Resource string
	Field    string
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q: %v", e.Resource, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// PostFromRecord converts one decoded JSON object into a Post.
func PostFromRecord(raw any) (Post, error) {
	r, err := newRecord("post", raw)
	if err != nil {
		return Post{}, err
	}
	p := Post{
		ID:     r.requireInt("id"),
		UserID: r.requireInt("userId"),
		Title:  r.requireString("title"),
		Body:   r.requireString("body"),
	}
	return p, r.err
}

// UserFromRecord converts one decoded JSON object into a User.
func UserFromRecord(raw any) (User, error) {
	r, err := newRecord("user", raw)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:       r.requireInt("id"),
		Name:     r.requireString("name"),
		Username: r.optionalString("username"),
		Email:    r.requireString("email"),
		Phone:    r.optionalString("phone"),
		Website:  r.optionalString("website"),
	}
	if r.err != nil {
		return User{}, r.err
	}

	addrRaw, ok := r.fields["address"]
	if !ok {
		return User{}, &FieldError{Resource: "user", Field: "address", Err: ErrFieldMissing}
	}
	addr, err := newRecord("user.address", addrRaw)
	if err != nil {
		return User{}, &FieldError{Resource: "user", Field: "address", Err: ErrFieldType}
	}
	u.Address = Address{
		Street:  addr.optionalString("street"),
		Suite:   addr.optionalString("suite"),
		City:    addr.requireString("city"),
		Zipcode: addr.optionalString("zipcode"),
	}
	return u, addr.err
}

// CommentFromRecord converts one decoded JSON object into a Comment.
func CommentFromRecord(raw any) (Comment, error) {
	r, err := newRecord("comment", raw)
	if err != nil {
		return Comment{}, err
	}
	c := Comment{
		ID:     r.requireInt("id"),
		PostID: r.requireInt("postId"),
		Name:   r.requireString("name"),
		Email:  r.requireString("email"),
		Body:   r.requireString("body"),
	}
	return c, r.err
}

// PostsFromList converts a decoded JSON array into posts, keeping server order.
func PostsFromList(raw any) ([]Post, error) {
	return fromList(raw, "posts", PostFromRecord)
}

// UsersFromList converts a decoded JSON array into users, keeping server order.
func UsersFromList(raw any) ([]User, error) {
	return fromList(raw, "users", UserFromRecord)
}

// CommentsFromList converts a decoded JSON array into comments, keeping server order.
func CommentsFromList(raw any) ([]Comment, error) {
	return fromList(raw, "comments", CommentFromRecord)
}

func fromList[T any](raw any, name string, conv func(any) (T, error)) ([]T, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotList)
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := conv(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// record walks a decoded object and keeps the first conversion failure.
type record struct {
	resource string
	fields   map[string]any
	err      error
}

func newRecord(resource string, raw any) (*record, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", resource, ErrNotObject)
	}
	return &record{resource: resource, fields: fields}, nil
}

func (r *record) fail(field string, err error) {
	if r.err == nil {
		r.err = &FieldError{Resource: r.resource, Field: field, Err: err}
	}
}

func (r *record) requireInt(field string) int {
	v, ok := r.fields[field]
	if !ok || v == nil {
		r.fail(field, ErrFieldMissing)
		return 0
	}
	n, ok := asInt(v)
	if !ok {
		r.fail(field, ErrFieldType)
		return 0
	}
	return n
}

func (r *record) requireString(field string) string {
	v, ok := r.fields[field]
	if !ok || v == nil {
		r.fail(field, ErrFieldMissing)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, ErrFieldType)
		return ""
	}
	return s
}

func (r *record) optionalString(field string) string {
	s, _ := r.fields[field].(string)
	return s
}

const maxExactFloatInt = 1 << 53

// asInt accepts integral JSON numbers as produced by encoding/json.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > maxExactFloatInt {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
