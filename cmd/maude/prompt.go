package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/maude/pkg/maude/internalerr"
)

const (
	firstSheetNotice = "Make sure the sheet that has the MAUDE data is the first sheet in your file."
	inputPrompt      = "Please enter the path of the MAUDE data file: "
	outputPrompt     = "Please enter the desired name for the output file (including the file extension, e.g., .xlsx): "
)

// prompter asks for missing paths on an interactive stream.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints msg and returns the trimmed answer. Surrounding quotes are
// removed, since drag-and-drop terminals quote paths with spaces.
func (p *prompter) ask(msg string) (string, error) {
	fmt.Fprint(p.out, msg)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	answer := strings.Trim(strings.TrimSpace(line), `"'`)
	if answer == "" {
		return "", fmt.Errorf("%w: no answer given", internalerr.ErrEmptyInput)
	}
	return answer, nil
}

func (p *prompter) inputPath() (string, error) {
	fmt.Fprintln(p.out, firstSheetNotice)
	return p.ask(inputPrompt)
}

func (p *prompter) outputPath() (string, error) {
	return p.ask(outputPrompt)
}
