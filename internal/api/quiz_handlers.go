package api

import (
	"net/http"

	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/quiz"
)

type quizStartRequest struct {
	Subject string `json:"subject"`
}

type quizAnswerRequest struct {
	Option *int `json:"option"`
}

type quizAnswerResponse struct {
	Correct bool `json:"correct"`
	Score   int  `json:"score"`
}

type quizStateResponse struct {
	State    string             `json:"state"`
	Question *quiz.QuestionView `json:"question,omitempty"`
	Subjects []string           `json:"subjects"`
}

func (s *Server) handleQuizView(w http.ResponseWriter, r *http.Request) {
	resp := quizStateResponse{
		State:    quiz.Idle.String(),
		Subjects: quiz.DefaultBanks().Subjects(),
	}
	if v, ok := s.App.Quiz.View(); ok {
		resp.State = quiz.InProgress.String()
		resp.Question = &v
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleQuizStart(w http.ResponseWriter, r *http.Request) {
	var req quizStartRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.App.Quiz.Start(r.Context(), req.Subject)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req quizAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Option == nil {
		handleError(w, r, quiz.ErrOptionOutOfRange)
		return
	}

	correct, err := s.App.Quiz.SelectAnswer(r.Context(), *req.Option)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, quizAnswerResponse{Correct: correct, Score: s.App.Quiz.Score()})
}

func (s *Server) handleQuizNext(w http.ResponseWriter, r *http.Request) {
	step, err := s.App.Quiz.Advance(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, step)
}

func (s *Server) handleQuizExit(w http.ResponseWriter, r *http.Request) {
	exited := s.App.Quiz.Exit(r.Context())
	logger.FromContext(r.Context()).Debug("quiz exit requested, exited=%t", exited)
	writeJSON(w, r, http.StatusOK, map[string]bool{"exited": exited})
}
