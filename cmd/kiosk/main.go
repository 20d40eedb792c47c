package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"comlab/internal/config"
	"comlab/internal/kioskclient"
	"comlab/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Kiosk error: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadKiosk()
	if err != nil {
		return fmt.Errorf("failed to load kiosk configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := kioskclient.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.RequestTimeout})
	logger.Get().Infof("Kiosk terminal connected to %s", cfg.APIURL)

	s := newSession(client, os.Stdin, os.Stdout)
	return s.loop(ctx)
}

// kioskAPI is the part of the kiosk client the terminal needs.
type kioskAPI interface {
	Status(ctx context.Context, studentID string) (*kioskclient.Result, error)
	Identify(ctx context.Context, studentID string) (*kioskclient.Result, error)
	Finalize(ctx context.Context, studentID, unitID string) (*kioskclient.Result, error)
	SignOut(ctx context.Context, studentID string) (*kioskclient.Result, error)
}

var _ kioskAPI = (*kioskclient.Client)(nil)

type session struct {
	api kioskAPI
	in  *bufio.Scanner
	out io.Writer
}

func newSession(api kioskAPI, in io.Reader, out io.Writer) *session {
	return &session{api: api, in: bufio.NewScanner(in), out: out}
}

// loop serves students until input ends or ctx is cancelled.
func (s *session) loop(ctx context.Context) error {
	for ctx.Err() == nil {
		studentID, ok := s.prompt("Student ID: ")
		if !ok {
			return s.in.Err()
		}
		if studentID == "" {
			fmt.Fprintln(s.out, "Please enter your Student ID.")
			continue
		}
		if err := s.serve(ctx, studentID); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return nil
}

// serve runs one round for a student: a signed-in student confirms the
// sign-out, anyone else picks a PC. API failures are shown to the student
// and are not returned.
func (s *session) serve(ctx context.Context, studentID string) error {
	status, err := s.api.Status(ctx, studentID)
	if err != nil {
		s.fail("Status", studentID, err)
		return nil
	}
	if status.SignedIn {
		return s.signOut(ctx, studentID, status.UnitID)
	}
	return s.signIn(ctx, studentID)
}

func (s *session) signOut(ctx context.Context, studentID, unitID string) error {
	answer, ok := s.prompt(fmt.Sprintf("You are signed in to %s. Sign out? [Y/n]: ", unitID))
	if !ok {
		return io.EOF
	}
	if a := strings.ToLower(answer); a != "" && a != "y" && a != "yes" {
		fmt.Fprintln(s.out, "Still signed in to "+unitID+".")
		return nil
	}

	res, err := s.api.SignOut(ctx, studentID)
	if err != nil {
		s.fail("SignOut", studentID, err)
		return nil
	}
	fmt.Fprintln(s.out, res.Message)
	logger.Get().Infow("Student signed out", "student_id", studentID, "unit_id", res.UnitID)
	return nil
}

func (s *session) signIn(ctx context.Context, studentID string) error {
	log := logger.Get()

	res, err := s.api.Identify(ctx, studentID)
	if err != nil {
		s.fail("Identify", studentID, err)
		return nil
	}
	// Another terminal signed the student in after the status check;
	// identify has signed them out again.
	if res.SignedOut {
		fmt.Fprintln(s.out, res.Message)
		log.Infow("Student signed out", "student_id", studentID, "unit_id", res.UnitID)
		return nil
	}

	if res.StudentName != "" {
		fmt.Fprintf(s.out, "Welcome, %s.\n", res.StudentName)
	}
	if len(res.Units) == 0 {
		fmt.Fprintln(s.out, "No PCs are available right now.")
		return nil
	}
	fmt.Fprintf(s.out, "Available PCs: %s\n", strings.Join(res.Units, ", "))

	unitID, ok := s.prompt("Select a PC: ")
	if !ok {
		return io.EOF
	}
	if unitID == "" {
		fmt.Fprintln(s.out, "No PC selected.")
		return nil
	}

	res, err = s.api.Finalize(ctx, studentID, unitID)
	if err != nil {
		s.fail("Finalize", studentID, err)
		return nil
	}
	fmt.Fprintln(s.out, res.Message)
	log.Infow("Student signed in", "student_id", studentID, "unit_id", res.UnitID)
	return nil
}

func (s *session) fail(step, studentID string, err error) {
	s.showError(err)
	logger.Get().Warnw(step+" failed", "student_id", studentID, "error", err)
}

func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) showError(err error) {
	var apiErr *kioskclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		fmt.Fprintln(s.out, apiErr.Message)
		return
	}
	fmt.Fprintln(s.out, "The kiosk service is unavailable. Please try again.")
}
