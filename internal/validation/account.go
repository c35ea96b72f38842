package validation

import (
	"strings"

	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

// SignupInput carries a registration request. Strength and format checks belong
// to the identity provider.
type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput carries a sign-in request.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NewsletterInput carries a newsletter subscription.
type NewsletterInput struct {
	Email string `json:"email" validate:"required"`
}

// ParseSignup requires string email, password and name.
func ParseSignup(body []byte) (SignupInput, error) {
	invalid := apperrors.NewInvalidPayload("Email, password, and name are required")
	obj, ok := decodeObject(body)
	if !ok {
		return SignupInput{}, invalid
	}
	email, okEmail := obj.str("email")
	password, okPassword := obj.str("password")
	name, okName := obj.str("name")
	if !okEmail || !okPassword || !okName {
		return SignupInput{}, invalid
	}
	return SignupInput{Email: email, Password: password, Name: name}, nil
}

// ParseLogin requires non-empty email and password.
func ParseLogin(body []byte) (LoginInput, error) {
	invalid := apperrors.NewInvalidPayload("Email and password are required")
	obj, ok := decodeObject(body)
	if !ok {
		return LoginInput{}, invalid
	}
	email, _ := obj.str("email")
	password, _ := obj.str("password")
	in := LoginInput{Email: email, Password: password}
	if err := validate.Struct(in); err != nil {
		return LoginInput{}, invalid
	}
	return in, nil
}

// ParseNewsletter requires a non-empty email string.
func ParseNewsletter(body []byte) (NewsletterInput, error) {
	invalid := apperrors.NewInvalidPayload("Email is required")
	obj, ok := decodeObject(body)
	if !ok {
		return NewsletterInput{}, invalid
	}
	email, _ := obj.str("email")
	in := NewsletterInput{Email: strings.TrimSpace(email)}
	if err := validate.Struct(in); err != nil {
		return NewsletterInput{}, invalid
	}
	return in, nil
}
