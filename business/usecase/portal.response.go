package usecase

import (
	"strings"

	"github.com/forest33/srun/business/entity"
)

// ParseLoginResponse parses "<uid or error code>`<anything>"
func ParseLoginResponse(body string) entity.Outcome {
	head, _, ok := strings.Cut(body, entity.LoginSeparator)
	if !ok {
		return entity.UnknownResponse(body)
	}

	head = strings.TrimSpace(head)
	if entity.IsSessionID(head) {
		return entity.Success(head)
	}

	return errorOutcome(head, body)
}

// ParseLogoutResponse parses the do_logout and force_logout responses
func ParseLogoutResponse(body string) entity.Outcome {
	code := strings.TrimSpace(body)
	if code == entity.LogoutSuccess {
		return entity.Success(code)
	}
	return errorOutcome(code, body)
}

func errorOutcome(code, raw string) entity.Outcome {
	if _, ok := entity.ServerErrorMessage(code); ok {
		return entity.KnownError(code)
	}
	return entity.UnknownResponse(raw)
}
