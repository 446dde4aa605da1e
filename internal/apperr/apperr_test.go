package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{Validation("data inválida"), http.StatusBadRequest},
		{Conflict("email duplicado"), http.StatusBadRequest},
		{Authentication("credenciais inválidas"), http.StatusUnauthorized},
		{Authorization("acesso negado"), http.StatusForbidden},
		{StateConflict("doação indisponível"), http.StatusForbidden},
		{NotFound("doação não encontrada"), http.StatusNotFound},
		{Persistence(errors.New("conexão perdida")), http.StatusInternalServerError},
		{errors.New("erro qualquer"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("ao solicitar doação: %w", StateConflict("indisponível"))
	if KindOf(wrapped) != KindStateConflict {
		t.Fatal("kind must survive fmt.Errorf wrapping")
	}
}

func TestPersistenceKeepsCause(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := Persistence(cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause must be reachable via errors.Is")
	}
	if err.Error() == cause.Error() {
		t.Fatal("caller-facing message must not leak the raw cause")
	}
}
