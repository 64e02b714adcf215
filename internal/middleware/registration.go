package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atinyakov/feather/internal/challenge"
	"github.com/atinyakov/feather/internal/envelope"
	"github.com/atinyakov/feather/internal/models"
)

// ChallengeChecker verifies an answer to a catalog question.
type ChallengeChecker interface {
	Check(index int, answer string) error
}

const maxRegisterBody = 1 << 16

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRegistration decodes and validates a registration request,
// including the challenge answer, and attaches the resulting
// models.RegistrationInput to the request context.
// Invalid requests are answered with a 400 envelope listing every failing field.
func ValidateRegistration(bank ChallengeChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req models.RegisterRequest
			if err := decodeSingleObject(http.MaxBytesReader(w, r.Body, maxRegisterBody), &req); err != nil {
				envelope.Write(w, envelope.Fail[models.UserResponse](
					http.StatusBadRequest, "invalid request", "body: must be a JSON object"))
				return
			}

			if errs := checkRegisterRequest(bank, &req); len(errs) > 0 {
				envelope.Write(w, envelope.Fail[models.UserResponse](
					http.StatusBadRequest, "validation failed", errs...))
				return
			}

			in := &models.RegistrationInput{
				Username: req.Username,
				Email:    req.Email,
				Password: req.Password,
			}
			ctx := context.WithValue(r.Context(), registrationKey, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RegistrationFromContext returns the input attached by ValidateRegistration.
func RegistrationFromContext(ctx context.Context) (*models.RegistrationInput, bool) {
	in, ok := ctx.Value(registrationKey).(*models.RegistrationInput)
	return in, ok && in != nil
}

// decodeSingleObject decodes exactly one JSON object with known fields only.
func decodeSingleObject(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

func checkRegisterRequest(bank ChallengeChecker, req *models.RegisterRequest) []string {
	var errs []string

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []string{"body: " + err.Error()}
		}
		for _, fe := range verrs {
			errs = append(errs, fe.Field()+": "+fieldMessage(fe))
		}
	}

	if req.QuestionIndex != nil && req.Answer != "" {
		switch err := bank.Check(*req.QuestionIndex, req.Answer); {
		case errors.Is(err, challenge.ErrInvalidIndex):
			errs = append(errs, "question_index: "+err.Error())
		case err != nil:
			errs = append(errs, "answer: "+err.Error())
		}
	}

	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "is not a valid email address"
	default:
		return "is invalid"
	}
}
