package domain

// Domain contains the resource records served by the API.

type Post struct {
	ID     int    `json:"id" yaml:"id"`
	UserID int    `json:"userId" yaml:"userId"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
}

type Address struct {
	Street  string `json:"street,omitempty" yaml:"street,omitempty"`
	Suite   string `json:"suite,omitempty" yaml:"suite,omitempty"`
	City    string `json:"city" yaml:"city"`
	Zipcode string `json:"zipcode,omitempty" yaml:"zipcode,omitempty"`
}

type User struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Username string  `json:"username,omitempty" yaml:"username,omitempty"`
	Email    string  `json:"email" yaml:"email"`
	Phone    string  `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website  string  `json:"website,omitempty" yaml:"website,omitempty"`
	Address  Address `json:"address" yaml:"address"`
}

type Comment struct {
	ID     int    `json:"id" yaml:"id"`
	PostID int    `json:"postId" yaml:"postId"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Body   string `json:"body" yaml:"body"`
}
