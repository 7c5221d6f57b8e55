package http

import (
	"net/http"

	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/pkg/httpx"
)

type QuizHandler struct {
	Quiz *service.QuizService
}

// HandleGenerate godoc
//
//	@Summary		Quiz Generation Endpoint
//	@Description	Generate a full quiz for a programming language
//	@Tags			Quiz
//	@Accept			json
//	@Produce		json
//	@Param			request	body		QuizRequest		true	"language"
//	@Success		200		{object}	domain.Quiz		"language, count, questions"
//	@Failure		400		{object}	httpx.APIError	"message"
//	@Failure		500		{object}	httpx.APIError	"message"
//	@Router			/quiz/generate [post].
func (h *QuizHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QuizRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	quiz, err := h.Quiz.GenerateQuiz(ctx, req.Language)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, quiz)
}

// HandleGenerateOne godoc
//
//	@Summary		Single Question Endpoint
//	@Description	Generate one question for a programming language
//	@Tags			Quiz
//	@Accept			json
//	@Produce		json
//	@Param			request	body		QuizRequest		true	"language"
//	@Success		200		{object}	domain.Question	"question"
//	@Failure		400		{object}	httpx.APIError	"message"
//	@Failure		500		{object}	httpx.APIError	"message"
//	@Router			/quiz/generate-one [post].
func (h *QuizHandler) HandleGenerateOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QuizRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	question, err := h.Quiz.GenerateQuestion(ctx, req.Language)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, question)
}

// HandleScore godoc
//
//	@Summary		Quiz Scoring Endpoint
//	@Description	Score submitted answers against their quiz questions
//	@Tags			Quiz
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ScoreRequest		true	"questions, answers"
//	@Success		200		{object}	domain.ScoreResult	"total, correct, percentage"
//	@Failure		400		{object}	httpx.APIError		"message"
//	@Router			/quiz/score [post].
func (h *QuizHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Questions == nil || req.Answers == nil {
		writeBadRequest(w, "Questions and answers arrays are required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.Quiz.Score(req.Questions, req.Answers))
}
