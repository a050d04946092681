// Package admincli implements the operator commands of cmd/admin: creating
// administrator accounts, running an expiry sweep and printing dashboard
// counters against the configured backend.
package admincli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
)

var ErrUsage = errors.New("usage: admin <create-admin [-email address] | sweep | stats>")

var errPasswordMismatch = errors.New("passwords do not match")

type App struct {
	svc    *services.Services
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(svc *services.Services, in io.Reader, out io.Writer) *App {
	return &App{svc: svc, reader: bufio.NewReader(in), out: out}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "create-admin":
		return a.createAdmin(ctx, flagx.LookupString(args[1:], "email"))
	case "sweep":
		return a.sweep(ctx)
	case "stats":
		return a.stats(ctx)
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, ErrUsage.Error())
		return nil
	}
	return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
}

func (a *App) createAdmin(ctx context.Context, email string) error {
	var err error
	if email == "" {
		if email, err = GetSimpleText(a.reader, "Enter admin email", a.out); err != nil {
			return err
		}
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		return errPasswordMismatch
	}

	admin, err := a.svc.Admin.CreateAdmin(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Admin %s created (id %s)\n", admin.Email, admin.ID)
	return nil
}

func (a *App) sweep(ctx context.Context) error {
	n, err := a.svc.Sweeper.Sweep(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deactivated %d expired jobs\n", n)
	return nil
}

func (a *App) stats(ctx context.Context) error {
	st, err := a.svc.Admin.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "job seekers:           %d\n", st.TotalJobSeekers)
	fmt.Fprintf(a.out, "recruiters:            %d\n", st.TotalRecruiters)
	fmt.Fprintf(a.out, "jobs:                  %d (%d active)\n", st.TotalJobs, st.ActiveJobs)
	fmt.Fprintf(a.out, "applications:          %d\n", st.TotalApplications)
	fmt.Fprintf(a.out, "pending verifications: %d\n", st.PendingVerifications)
	return nil
}
