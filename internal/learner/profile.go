// Package learner holds the logged-in learner's in-memory profile.
package learner

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stinglish/stinglish/internal/proficiency"
)

// MissingCredentialsMessage is shown on the login screen when a field is empty.
const MissingCredentialsMessage = "Please enter both username and password."

// ErrMissingCredentials is returned by Login when the username or password
// is blank.
var ErrMissingCredentials = errors.New("username and password are required")

// Profile is the learner for the current login. It lives only as long as
// the login and is never persisted.
type Profile struct {
	Name  string
	Level proficiency.Level
}

type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

var validate = validator.New()

// Login accepts any non-blank username and password pair. The password is
// not checked or kept.
func Login(username, password string) (*Profile, error) {
	creds := credentials{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	if err := validate.Struct(creds); err != nil {
		return nil, ErrMissingCredentials
	}
	return &Profile{Name: creds.Username, Level: proficiency.Unknown}, nil
}

// LevelLabel returns the display label of the learner's level.
func (p *Profile) LevelLabel() string {
	if p == nil {
		return proficiency.Unknown.Label()
	}
	return p.Level.Label()
}

// SetLevel records a newly assessed level.
func (p *Profile) SetLevel(l proficiency.Level) {
	p.Level = l
}

// Initial returns the upper-cased first letter of the name, used as an avatar.
func (p *Profile) Initial() string {
	for _, r := range p.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
