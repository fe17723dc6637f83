// Package output renders user-facing terminal text.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/minhyannv/gaia-botchat/pkg/gaia"
)

// MaxResponseLength is the display width of a rendered answer.
const MaxResponseLength = 50

// Truncate returns text unchanged when it has at most max runes, otherwise
// its first max-3 runes followed by "...".
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	keep := max - 3
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + "..."
}

// Printer writes styled lines to an output stream.
type Printer struct {
	out io.Writer

	title    *color.Color
	plain    *color.Color
	prompt   *color.Color
	banner   *color.Color
	question *color.Color
	label    *color.Color
	answer   *color.Color
	success  *color.Color
	failure  *color.Color
	good     *color.Color
	bad      *color.Color
}

// NewPrinter returns a Printer for out. Colors are used only when out is a
// terminal and NO_COLOR is unset.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = io.Discard
	}
	p := &Printer{
		out:      out,
		title:    color.New(color.FgYellow, color.Bold),
		plain:    color.New(color.FgWhite),
		prompt:   color.New(color.FgYellow, color.Bold),
		banner:   color.New(color.FgMagenta, color.Bold),
		question: color.New(color.FgGreen, color.Bold),
		label:    color.New(color.FgBlue, color.Bold),
		answer:   color.New(color.FgCyan),
		success:  color.New(color.FgGreen, color.Bold),
		failure:  color.New(color.FgRed, color.Bold),
		good:     color.New(color.FgGreen),
		bad:      color.New(color.FgRed),
	}
	p.setColor(useColor(out))
	return p
}

func useColor(out io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) setColor(enabled bool) {
	for _, c := range []*color.Color{
		p.title, p.plain, p.prompt, p.banner, p.question, p.label,
		p.answer, p.success, p.failure, p.good, p.bad,
	} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Title prints a section heading preceded by a blank line.
func (p *Printer) Title(text string) {
	_, _ = p.title.Fprintln(p.out, "\n"+text)
}

// Line prints an unemphasized line.
func (p *Printer) Line(text string) {
	_, _ = p.plain.Fprintln(p.out, text)
}

// Prompt prints text without a trailing newline.
func (p *Printer) Prompt(text string) {
	_, _ = p.prompt.Fprint(p.out, text)
}

// Banner prints the iteration header.
func (p *Printer) Banner(iteration int) {
	_, _ = p.banner.Fprintf(p.out, "\n=== Iteration %d ===\n", iteration)
}

// Success prints a confirmation line.
func (p *Printer) Success(text string) {
	_, _ = p.success.Fprintln(p.out, text)
}

// Error prints an error line.
func (p *Printer) Error(text string) {
	_, _ = p.failure.Fprintln(p.out, text)
}

// Good renders text in the "set" color for embedding in other lines.
func (p *Printer) Good(text string) string {
	return p.good.Sprint(text)
}

// Bad renders text in the "unset" color for embedding in other lines.
func (p *Printer) Bad(text string) string {
	return p.bad.Sprint(text)
}

// Report prints the outcome of one question.
func (p *Printer) Report(question string, resp gaia.Response) {
	switch resp.Kind {
	case gaia.KindSuccess:
		_, _ = p.question.Fprintf(p.out, "\nQuestion: %s\n", question)
		_, _ = p.label.Fprintln(p.out, "Response:")
		_, _ = p.answer.Fprintln(p.out, Truncate(resp.Content, MaxResponseLength))
	case gaia.KindDomainError:
		if resp.Escalated {
			p.Error("Your domain is invalid, please change it.")
			return
		}
		p.Error("Your domain is bad, it does not serve the chat API, please change it.")
	default:
		_, _ = p.failure.Fprintf(p.out, "Error for question %q: ", question)
		_, _ = fmt.Fprintln(p.out, resp.Detail)
	}
}
