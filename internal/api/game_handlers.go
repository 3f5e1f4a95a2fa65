package api

import (
	"net/http"

	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/games"
)

type mathSelectRequest struct {
	Value *int `json:"value"`
}

type wordGuessRequest struct {
	Letter string `json:"letter"`
}

type gamesResponse struct {
	Math games.ArithmeticView `json:"math"`
	Word games.WordView       `json:"word"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, gamesResponse{Math: s.App.Math.View(), Word: s.App.Word.View()})
}

func (s *Server) handleMathRound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.App.Math.NewRound(r.Context()))
}

func (s *Server) handleMathSelect(w http.ResponseWriter, r *http.Request) {
	var req mathSelectRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Value == nil {
		handleError(w, r, apperrors.NewValidationError("value", "required"))
		return
	}

	result, err := s.App.Math.Select(r.Context(), *req.Value)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleWordRound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.App.Word.NewRound(r.Context()))
}

func (s *Server) handleWordGuess(w http.ResponseWriter, r *http.Request) {
	var req wordGuessRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.App.Word.Guess(r.Context(), req.Letter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
