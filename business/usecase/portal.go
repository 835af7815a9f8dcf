package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/forest33/srun/business/entity"
	"github.com/forest33/srun/pkg/logger"
)

const (
	operationLogin  = "login"
	operationLogout = "logout"
	operationKick   = "kick"
)

// PortalUseCase object capable of interacting with PortalUseCase
type PortalUseCase struct {
	log        *logger.Logger
	transport  entity.PortalTransport
	enumerator entity.InterfaceEnumerator
	store      entity.SessionStore
}

// NewPortalUseCase creates a new PortalUseCase
func NewPortalUseCase(log *logger.Logger, transport entity.PortalTransport, enumerator entity.InterfaceEnumerator, store entity.SessionStore) *PortalUseCase {
	return &PortalUseCase{
		log:        log.Duplicate(log.With().Str("layer", "ucportal").Logger()),
		transport:  transport,
		enumerator: enumerator,
		store:      store,
	}
}

// Login authenticates the account and saves the issued session identifier to uidFile
func (uc *PortalUseCase) Login(ctx context.Context, cred entity.Credentials, ifName string, server entity.Server, uidFile string) (string, error) {
	log := uc.operationLog(operationLogin)

	if ifName == "" {
		return "", operationError(operationLogin, errors.Wrap(entity.ErrConfigurationMissing, "Client.interface"))
	}

	mac, err := ResolveHardwareAddress(uc.enumerator, ifName)
	if err != nil {
		return "", operationError(operationLogin, err)
	}

	log.Debug().Str("if", ifName).Str("mac", mac).Msg("hardware address resolved")

	outcome := uc.send(ctx, log, server.URL(entity.LoginPath), entity.NewLoginForm(cred, mac), ParseLoginResponse)
	if err := outcome.Err(); err != nil {
		return "", operationError(operationLogin, err)
	}

	if err := uc.store.Write(outcome.Payload, uidFile); err != nil {
		return "", operationError(operationLogin, err)
	}

	log.Info().Str("uid", outcome.Payload).Str("file", uidFile).Msg("logged in")

	return outcome.Payload, nil
}

// Logout closes the session saved in uidFile, the file is left as is
func (uc *PortalUseCase) Logout(ctx context.Context, server entity.Server, uidFile string) error {
	log := uc.operationLog(operationLogout)

	uid, err := uc.store.Read(uidFile)
	if err != nil {
		return operationError(operationLogout, err)
	}

	outcome := uc.send(ctx, log, server.URL(entity.LogoutPath), &entity.LogoutForm{UID: uid}, ParseLogoutResponse)
	if err := outcome.Err(); err != nil {
		return operationError(operationLogout, err)
	}

	log.Info().Str("uid", uid).Msg("logged out")

	return nil
}

// Kick closes every session of the account
func (uc *PortalUseCase) Kick(ctx context.Context, cred entity.Credentials, server entity.Server) error {
	log := uc.operationLog(operationKick)

	form := &entity.ForceLogoutForm{
		Username: cred.Username,
		Password: cred.Password,
	}

	outcome := uc.send(ctx, log, server.URL(entity.ForceLogoutPath), form, ParseLogoutResponse)
	if err := outcome.Err(); err != nil {
		return operationError(operationKick, err)
	}

	log.Info().Str("username", cred.Username).Msg("all sessions closed")

	return nil
}

func (uc *PortalUseCase) send(ctx context.Context, log *logger.Logger, url string, form interface{}, parse func(string) entity.Outcome) entity.Outcome {
	values, err := encodeForm(form)
	if err != nil {
		return entity.TransportFailure(errors.Wrap(err, "failed to encode request"))
	}

	body, err := uc.transport.PostForm(ctx, url, values)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Msg("request failed")
		return entity.TransportFailure(err)
	}

	outcome := parse(body)

	ev := log.Debug()
	if outcome.Kind != entity.OutcomeSuccess {
		ev = ev.Str("body", body)
	}
	ev.Str("url", url).
		Stringer("outcome", outcome.Kind).
		Str("code", outcome.Code).
		Msg("response parsed")

	return outcome
}

func (uc *PortalUseCase) operationLog(operation string) *logger.Logger {
	return uc.log.Duplicate(uc.log.With().
		Str("operation", operation).
		Str("request", uuid.NewString()).
		Logger())
}

func operationError(operation string, err error) error {
	return errors.Wrapf(err, "%s failed", operation)
}
