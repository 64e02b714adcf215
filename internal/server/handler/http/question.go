package http

import (
	"net/http"

	"github.com/atinyakov/feather/internal/envelope"
	"github.com/atinyakov/feather/internal/models"
)

// QuestionPicker draws a verification question.
type QuestionPicker interface {
	Pick() models.Question
}

// QuestionHandler serves random verification questions.
type QuestionHandler struct {
	Bank QuestionPicker
}

// Get handles GET /api/v1/get_questions.
func (h *QuestionHandler) Get(w http.ResponseWriter, _ *http.Request) {
	envelope.Write(w, envelope.OK("ok", h.Bank.Pick()))
}
