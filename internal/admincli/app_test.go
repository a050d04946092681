package admincli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) *services.Services {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDriver = config.DriverMemory

	disk, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)
	files := storage.NewFiles(disk, cfg.PublicPrefix, cfg.MaxUploadSize)
	return services.New(repomanager.NewMemoryRepositoryManager(), files, nil, logging.Nop{}, cfg)
}

// stubPasswords makes readPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestCreateAdminPromptsForEmail(t *testing.T) {
	svc := newTestServices(t)
	stubPasswords(t, "Admin1234", "Admin1234")

	var out bytes.Buffer
	app := NewApp(svc, strings.NewReader("Root@Example.com\n"), &out)
	require.NoError(t, app.Run(context.Background(), []string{"create-admin"}))
	assert.Contains(t, out.String(), "Admin root@example.com created")

	sess, err := svc.Auth.Login(context.Background(), "root@example.com", "Admin1234")
	require.NoError(t, err)
	assert.NotNil(t, sess.Admin)
}

func TestCreateAdminWithFlag(t *testing.T) {
	svc := newTestServices(t)
	stubPasswords(t, "Admin1234", "Admin1234", "Admin1234", "Admin1234")

	var out bytes.Buffer
	app := NewApp(svc, strings.NewReader(""), &out)
	require.NoError(t, app.Run(context.Background(), []string{"create-admin", "-email", "ops@example.com"}))

	err := app.Run(context.Background(), []string{"create-admin", "-email=ops@example.com"})
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestCreateAdminRejectsBadPasswords(t *testing.T) {
	svc := newTestServices(t)
	var out bytes.Buffer

	stubPasswords(t, "Admin1234", "Admin12345")
	app := NewApp(svc, strings.NewReader(""), &out)
	err := app.Run(context.Background(), []string{"create-admin", "-email", "a@example.com"})
	assert.ErrorIs(t, err, errPasswordMismatch)

	stubPasswords(t, "weak", "weak")
	err = app.Run(context.Background(), []string{"create-admin", "-email", "a@example.com"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSweepAndStats(t *testing.T) {
	svc := newTestServices(t)
	var out bytes.Buffer
	app := NewApp(svc, strings.NewReader(""), &out)

	require.NoError(t, app.Run(context.Background(), []string{"sweep"}))
	assert.Contains(t, out.String(), "Deactivated 0 expired jobs")

	out.Reset()
	require.NoError(t, app.Run(context.Background(), []string{"stats"}))
	assert.Contains(t, out.String(), "pending verifications: 0")
}

func TestUnknownCommand(t *testing.T) {
	app := NewApp(newTestServices(t), strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"drop-tables"}), ErrUsage)
	assert.NoError(t, app.Run(context.Background(), []string{"help"}))
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("lastline")), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetPasswordError(t *testing.T) {
	stubPasswords(t)
	_, err := GetPassword("Enter password", &bytes.Buffer{})
	assert.Error(t, err)
}
