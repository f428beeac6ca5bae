package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio implements IO over a reader and a writer, os.Stdin and os.Stdout
// by default. Passwords are read without echo when in is a terminal.
type Stdio struct {
	in    *bufio.Reader
	out   io.Writer
	stdin *os.File // stdin файл для term.ReadPassword, nil если ввод не терминал
}

// NewStdio returns IO bound to the process terminal.
func NewStdio() IO {
	s := newStdio(os.Stdin, os.Stdout)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		s.stdin = os.Stdin
	}
	return s
}

func newStdio(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{in: bufio.NewReader(in), out: out}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if s.stdin == nil {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pw, err := term.ReadPassword(int(s.stdin.Fd()))
	s.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (s *Stdio) Confirm(prompt string) (bool, error) {
	answer, err := s.ReadInput(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
