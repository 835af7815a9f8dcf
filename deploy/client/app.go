package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	rest "github.com/forest33/srun/adapter/http"
	"github.com/forest33/srun/adapter/ifaddr"
	"github.com/forest33/srun/adapter/uidfile"
	"github.com/forest33/srun/business/entity"
	"github.com/forest33/srun/business/usecase"
	"github.com/forest33/srun/pkg/config"
	"github.com/forest33/srun/pkg/logger"
)

type application struct {
	stdout    io.Writer
	stderr    io.Writer
	configDir string
	cfg       *entity.ClientConfig
	zlog      *logger.Logger
}

func (app *application) operation(fn func(ctx context.Context) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := fn(cmd.Context()); err != nil {
			return &failure{err: err}
		}
		return nil
	}
}

// logger returns the configured logger or a default one until the config is loaded
func (app *application) logger() *logger.Logger {
	if app.zlog == nil {
		app.zlog = logger.New(logger.Config{
			Level:           "info",
			TimeFieldFormat: time.RFC3339,
			PrettyPrint:     true,
			Stdout:          app.stdout,
			Stderr:          app.stderr,
		})
	}
	return app.zlog
}

func (app *application) loadConfig() error {
	cfg := &entity.ClientConfig{}
	if _, err := config.New(entity.DefaultClientConfigFileName, app.configDir, cfg); err != nil {
		if errors.Is(err, config.ErrRequiredParameter) {
			return errors.Wrap(entity.ErrConfigurationMissing, err.Error())
		}
		return errors.Wrap(err, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	app.cfg = cfg
	app.zlog = logger.New(logger.Config{
		Level:             cfg.Logger.Level,
		TimeFieldFormat:   cfg.Logger.TimeFieldFormat,
		PrettyPrint:       *cfg.Logger.PrettyPrint,
		DisableSampling:   *cfg.Logger.DisableSampling,
		RedirectStdLogger: *cfg.Logger.RedirectStdLogger,
		ErrorStack:        *cfg.Logger.ErrorStack,
		ShowCaller:        *cfg.Logger.ShowCaller,
		FileName:          cfg.Logger.FileName,
		Stdout:            app.stdout,
		Stderr:            app.stderr,
	})

	return nil
}

func (app *application) portal() (*usecase.PortalUseCase, string, error) {
	if err := app.loadConfig(); err != nil {
		return nil, "", err
	}

	uidFile, err := app.cfg.UIDFile()
	if err != nil {
		return nil, "", err
	}

	transport := rest.New(&rest.Config{
		Timeout:   time.Duration(app.cfg.Server.Timeout) * time.Second,
		UserAgent: app.cfg.Server.UserAgent,
	}, app.zlog)

	return usecase.NewPortalUseCase(app.zlog, transport, ifaddr.New(app.zlog), uidfile.New(app.zlog)), uidFile, nil
}

func (app *application) login(ctx context.Context) error {
	uc, uidFile, err := app.portal()
	if err != nil {
		return err
	}
	_, err = uc.Login(ctx, app.cfg.Credentials(), app.cfg.Client.Interface, app.cfg.PortalServer(), uidFile)
	return err
}

func (app *application) logout(ctx context.Context) error {
	uc, uidFile, err := app.portal()
	if err != nil {
		return err
	}
	return uc.Logout(ctx, app.cfg.PortalServer(), uidFile)
}

func (app *application) kick(ctx context.Context) error {
	uc, _, err := app.portal()
	if err != nil {
		return err
	}
	return uc.Kick(ctx, app.cfg.Credentials(), app.cfg.PortalServer())
}

// interfaces prints every interface with its addresses as found and as sent to the portal
func (app *application) interfaces(_ context.Context) error {
	addrs := ifaddr.New(app.logger()).Enumerate()
	if len(addrs) == 0 {
		return errors.New("no network interfaces found")
	}

	for _, name := range ifaddr.Names(addrs) {
		if len(addrs[name]) == 0 {
			fmt.Fprintf(app.stdout, "%s\t-\n", name)
			continue
		}
		for _, addr := range addrs[name] {
			fmt.Fprintf(app.stdout, "%s\t%s\t%s\n", name, addr, usecase.MaskHardwareAddress(addr))
		}
	}

	return nil
}
