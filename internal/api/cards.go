package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/tango/internal/cards"
)

var validate = validator.New()

// maxBodyBytes bounds a create-card request body.
const maxBodyBytes = 16 << 10

// CreateCardRequest is the body of POST /api/cards.
type CreateCardRequest struct {
	Term    string `json:"term" validate:"required,max=200"`
	Meaning string `json:"meaning" validate:"required,max=200"`
	Note    string `json:"note" validate:"max=500"`
}

// CardHandler serves the card collection.
type CardHandler struct {
	store cards.Store
}

// NewCardHandler creates a handler over store.
func NewCardHandler(store cards.Store) *CardHandler {
	return &CardHandler{store: store}
}

// List returns every card in store order.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.FetchAll(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "could not load cards", err)
		return
	}
	respondJSON(w, http.StatusOK, all)
}

// Create stores a new card and returns it with 201.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	req.Term, req.Meaning, req.Note = cards.Normalize(req.Term, req.Meaning, req.Note)
	if err := validate.Struct(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, validationMessage(err), err)
		return
	}

	card, err := h.store.Create(r.Context(), req.Term, req.Meaning, req.Note)
	if err != nil {
		if errors.Is(err, cards.ErrEmptyTerm) || errors.Is(err, cards.ErrEmptyMeaning) {
			respondError(w, r, http.StatusBadRequest, err.Error(), err)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "could not save card", err)
		return
	}

	slog.Info("card created", "card_id", card.ID)
	respondJSON(w, http.StatusCreated, card)
}

// validationMessage turns the first field error into a client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " is too long (max " + fe.Param() + ")"
	default:
		return field + " is invalid"
	}
}

func jsonName(field string) string {
	switch field {
	case "Term":
		return "term"
	case "Meaning":
		return "meaning"
	case "Note":
		return "note"
	}
	return field
}
